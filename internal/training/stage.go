package training

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	MinStage = 1
	MaxStage = 4
)

// Stage is one competition phase result. The *Text fields keep the values as
// the user typed them so the server receives exactly that.
type Stage struct {
	Number    int
	Score     float64
	Placement int

	numberText    string
	scoreText     string
	placementText string
}

type stageForm struct {
	Etapa     string `schema:"etapa"`
	Nota      string `schema:"nota"`
	Colocacao string `schema:"colocacao"`
}

// ParseStageNumber validates the stage number prompt answer.
func ParseStageNumber(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, &ValidationError{Field: "etapa", Message: MessageInvalidStage}
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < MinStage || n > MaxStage {
		return 0, &ValidationError{Field: "etapa", Message: MessageInvalidStage}
	}
	return n, nil
}

// ParseScore validates the score prompt answer.
func ParseScore(raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, &ValidationError{Field: "nota", Message: MessageInvalidData}
	}
	// Hex floats parse in Go but not on the server.
	if strings.ContainsAny(text, "xXpP") {
		return 0, &ValidationError{Field: "nota", Message: MessageInvalidData}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: "nota", Message: MessageInvalidData}
	}
	return v, nil
}

// ParsePlacement validates the placement prompt answer.
func ParsePlacement(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, &ValidationError{Field: "colocacao", Message: MessageInvalidData}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ValidationError{Field: "colocacao", Message: MessageInvalidData}
	}
	return n, nil
}

// ParseStage validates all three answers, stopping at the first bad one.
func ParseStage(number, score, placement string) (Stage, error) {
	n, err := ParseStageNumber(number)
	if err != nil {
		return Stage{}, err
	}
	s, err := ParseScore(score)
	if err != nil {
		return Stage{}, err
	}
	p, err := ParsePlacement(placement)
	if err != nil {
		return Stage{}, err
	}
	return Stage{
		Number:        n,
		Score:         s,
		Placement:     p,
		numberText:    strings.TrimSpace(number),
		scoreText:     strings.TrimSpace(score),
		placementText: strings.TrimSpace(placement),
	}, nil
}

// FormValues returns the form body for the stage.
func (s Stage) FormValues() (url.Values, error) {
	form := stageForm{
		Etapa:     s.numberText,
		Nota:      s.scoreText,
		Colocacao: s.placementText,
	}
	if form.Etapa == "" {
		form.Etapa = strconv.Itoa(s.Number)
	}
	if form.Nota == "" {
		form.Nota = strconv.FormatFloat(s.Score, 'f', -1, 64)
	}
	if form.Colocacao == "" {
		form.Colocacao = strconv.Itoa(s.Placement)
	}
	return encodeForm(form)
}
