package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/schemagraph/internal/config"
	"github.com/roach88/schemagraph/internal/store"
)

// session is an opened journal and the store loaded from it.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     *OutputFormatter
	journal *store.Journal
	store   *store.Store
}

// openSession opens database, or the configured database when it is empty,
// and loads its store. New databases get the configured base IRI.
func (o *RootOptions) openSession(ctx context.Context, cmd *cobra.Command, database string) (*session, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if database == "" {
		database = cfg.Database
	}
	logger := o.logger(cmd, cfg)
	out := o.formatter(cmd)

	j, err := store.OpenJournal(database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	st, err := j.LoadStore(ctx, cfg.BaseIRI, store.WithLogger(logger))
	if err != nil {
		j.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load database", err)
	}
	out.VerboseLog("Opened %s (%d operations)", database, len(st.Operations()))
	return &session{cfg: cfg, logger: logger, out: out, journal: j, store: st}, nil
}

func (s *session) save(ctx context.Context) error {
	if err := s.journal.Save(ctx, s.store); err != nil {
		return WrapExitError(ExitCommandError, "failed to save database", err)
	}
	return nil
}

func (s *session) Close() error {
	return s.journal.Close()
}
