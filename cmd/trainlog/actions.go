package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kingrea/trainlog/internal/client"
	"github.com/kingrea/trainlog/internal/config"
	"github.com/kingrea/trainlog/internal/logbook"
	"github.com/kingrea/trainlog/internal/training"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// session bundles what a one-shot command needs.
type session struct {
	client  *client.Client
	logbook *logbook.Logbook
}

func openSession(opts *rootOptions) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return newSession(cfg)
}

func newSession(cfg *config.Config) (*session, error) {
	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		return nil, err
	}
	c, err := client.New(client.SettingsFromConfig(cfg), client.WithLogger(lb))
	if err != nil {
		_ = lb.Close()
		return nil, err
	}
	return &session{client: c, logbook: lb}, nil
}

func (s *session) Close() error {
	return s.logbook.Close()
}

// report prints the outcome of an action the way the TUI status line shows it.
func (s *session) report(cmd *cobra.Command, action training.Action, message string, err error) error {
	if err == nil {
		s.logbook.Info("%s · ok (cli)", action.Label())
		fmt.Fprintln(cmd.OutOrStdout(), message)
		return nil
	}
	if msg := training.UserMessage(err); msg != "" {
		s.logbook.Warn("%s · validation failed (cli): %v", action.Label(), err)
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
		return err
	}
	s.logbook.Error("%s · %v (cli)", action.Label(), err)
	var rerr *client.RequestError
	if errors.As(err, &rerr) {
		fmt.Fprintln(cmd.ErrOrStderr(), rerr.UserMessage())
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), action.FailureMessage())
	}
	return err
}

func newTrainingCmd(opts *rootOptions, use, short string) *cobra.Command {
	var (
		occurred    bool
		description string
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := training.ParseKind(use)
			if err != nil {
				return err
			}
			s, err := openSession(opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			defer s.Close()

			var evt training.Event
			if occurred {
				evt = training.OccurredToday(kind, timeNow())
			} else if evt, err = training.Described(kind, description); err != nil {
				return s.report(cmd, kind.Action(), "", err)
			}
			err = s.client.RecordTraining(contextOf(cmd), evt)
			return s.report(cmd, kind.Action(), kind.Action().SuccessMessage(), err)
		},
	}
	cmd.Flags().BoolVar(&occurred, "sim", false, "o treino foi realizado hoje (envia a data atual)")
	cmd.Flags().StringVar(&description, "descricao", "", "descrição do treino, quando não foi hoje")
	cmd.MarkFlagsMutuallyExclusive("sim", "descricao")
	return cmd
}

func newStageCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "etapa ETAPA NOTA COLOCACAO",
		Short: "Registra nota e colocação de uma etapa (1-4)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			defer s.Close()

			stage, err := training.ParseStage(args[0], args[1], args[2])
			if err != nil {
				return s.report(cmd, training.ActionStage, "", err)
			}
			err = s.client.AddStage(contextOf(cmd), stage)
			return s.report(cmd, training.ActionStage, training.ActionStage.SuccessMessage(), err)
		},
	}
}

func newPrognosisCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prognostico",
		Short: "Consulta o prognóstico calculado pelo servidor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			defer s.Close()

			p, err := s.client.Prognosis(contextOf(cmd))
			return s.report(cmd, training.ActionPrognosis, p.Message(), err)
		},
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
