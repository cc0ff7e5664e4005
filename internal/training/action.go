// internal/training/action.go
//
// Actions are the four things a user can ask the server to do. Each one owns
// its endpoint and the fixed messages shown in the status region.

package training

// Action identifies one user-initiated exchange with the server.
type Action string

const (
	ActionSea       Action = "sea"
	ActionGym       Action = "gym"
	ActionStage     Action = "stage"
	ActionPrognosis Action = "prognosis"
)

// Endpoint paths on the training-log server.
const (
	PathSeaTraining = "/registrar-treino-mar"
	PathGymTraining = "/registrar-treino-academia"
	PathStageInfo   = "/adicionar-informacoes-etapa"
	PathPrognosis   = "/obter-prognostico"
)

// Prompt texts.
const (
	PromptSeaOccurred    = "Realizou treino no mar hoje? (sim/não)"
	PromptGymOccurred    = "Realizou treino na academia hoje? (sim/não)"
	PromptSeaDescribe    = "Descreva o treino no mar:"
	PromptGymDescribe    = "Descreva o treino na academia:"
	PromptStageNumber    = "Digite o número da etapa (1-4):"
	PromptStageScore     = "Digite a nota:"
	PromptStagePlacement = "Digite a colocação:"
)

// Messages that do not belong to a single action.
const (
	MessageInvalidStage     = "Número da etapa inválido."
	MessageInvalidData      = "Dados inválidos."
	MessageMissingDescribe  = "Descrição do treino não informada."
	MessagePrognosisPrefix  = "Prognóstico: "
	MessageCancelled        = "Ação cancelada."
	MessageAwaitingResponse = "Aguardando resposta do servidor..."
)

// Path returns the endpoint the action posts to.
func (a Action) Path() string {
	switch a {
	case ActionSea:
		return PathSeaTraining
	case ActionGym:
		return PathGymTraining
	case ActionStage:
		return PathStageInfo
	case ActionPrognosis:
		return PathPrognosis
	}
	return ""
}

// Label is a short human name used in logs.
func (a Action) Label() string {
	switch a {
	case ActionSea:
		return "treino no mar"
	case ActionGym:
		return "treino na academia"
	case ActionStage:
		return "informações da etapa"
	case ActionPrognosis:
		return "prognóstico"
	}
	return string(a)
}

// SuccessMessage is shown after a 200 response. The prognosis message embeds
// server data and is built by Prognosis.Message instead.
func (a Action) SuccessMessage() string {
	switch a {
	case ActionSea:
		return "Treino no mar registrado com sucesso."
	case ActionGym:
		return "Treino na academia registrado com sucesso."
	case ActionStage:
		return "Informações da etapa registradas com sucesso."
	case ActionPrognosis:
		return MessagePrognosisPrefix
	}
	return ""
}

// FailureMessage is shown after any non-200 response or transport failure.
func (a Action) FailureMessage() string {
	switch a {
	case ActionSea:
		return "Erro ao registrar treino no mar."
	case ActionGym:
		return "Erro ao registrar treino na academia."
	case ActionStage:
		return "Erro ao registrar informações da etapa."
	case ActionPrognosis:
		return "Erro ao obter prognóstico."
	}
	return ""
}
