// Package server provides an HTTP REST frontend to the pushdown recognizer. It
// serves info on the loaded grammar and lets clients submit words to be
// checked, with every check recorded in a persistence layer for later
// retrieval.
//
// The server provides the following API endpoints:
//
//   - GET    /info        - get version info on the server and the engine.
//   - GET    /rules       - get the production rules of the loaded grammar.
//   - POST   /checks      - check a word against the grammar and record it.
//   - GET    /checks      - get all recorded checks.
//   - GET    /checks/{id} - get a particular recorded check.
//   - DELETE /checks/{id} - delete a recorded check.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/dekarrin/pushdown/internal/grammar"
	"github.com/dekarrin/pushdown/internal/pda"
	"github.com/dekarrin/pushdown/internal/pdg"
	"github.com/dekarrin/pushdown/server/dao"
	"github.com/dekarrin/pushdown/server/serr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PushdownServer is an HTTP REST server that checks words against a
// context-free grammar and serves the history of prior checks. The zero-value
// of a PushdownServer should not be used directly; call New() to get one ready
// for use.
type PushdownServer struct {
	router       chi.Router
	db           dao.Store
	g            grammar.Grammar
	recordTraces bool
}

// New creates a new PushdownServer that checks words against the grammar named
// in the config. If no grammar file is set, the built-in canonical grammar is
// used.
func New(cfg Config) (PushdownServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return PushdownServer{}, fmt.Errorf("config: %w", err)
	}

	var g grammar.Grammar
	if cfg.GrammarFile != "" {
		var err error
		g, err = pdg.LoadGrammarFile(cfg.GrammarFile)
		if err != nil {
			return PushdownServer{}, err
		}
	} else {
		g = grammar.Canonical()
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return PushdownServer{}, fmt.Errorf("connect DB: %w", err)
	}

	ps := PushdownServer{
		db:           db,
		g:            g,
		recordTraces: cfg.RecordTraces,
	}

	ps.router = newRouter(&ps)

	return ps, nil
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost".
// If port is less than 1, it will default to 8080.
func (ps PushdownServer) ServeForever(address string, port int) {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, ps.router))
}

// Grammar returns a copy of the grammar that words are checked against.
func (ps PushdownServer) Grammar() grammar.Grammar {
	return ps.g.Copy()
}

// CheckWord runs the recognizer on the given word and records the outcome in
// persistence. The word must consist only of terminal symbols.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the word contains symbols
// that are not terminals, it will match serr.ErrBadArgument. If the error
// occured due to an unexpected problem with the DB, it will match serr.ErrDB.
func (ps PushdownServer) CheckWord(ctx context.Context, word string) (dao.Check, error) {
	for _, ch := range word {
		if !grammar.IsTerminal(string(ch)) {
			return dao.Check{}, serr.New(fmt.Sprintf("word contains non-terminal symbol %q", string(ch)), serr.ErrBadArgument)
		}
	}

	// a fresh recognizer per check so concurrent requests cannot interleave
	// their trace output
	rec, err := pda.NewRecognizer(ps.g)
	if err != nil {
		return dao.Check{}, serr.New("recognizer setup failed", err)
	}

	var trace []string
	if ps.recordTraces {
		rec.RegisterTraceListener(func(line string) {
			trace = append(trace, line)
		})
	}

	accepted := rec.Accepts(word)

	check := dao.Check{
		Word:     word,
		Accepted: accepted,
		Trace:    trace,
	}

	check, err = ps.db.Checks().Create(ctx, check)
	if err != nil {
		return dao.Check{}, serr.WrapDB("could not save check", err)
	}

	return check, nil
}

// GetAllChecks returns every recorded check, sorted by creation time.
//
// The returned error, if non-nil, will match serr.ErrDB if the error occured
// due to an unexpected problem with the DB.
func (ps PushdownServer) GetAllChecks(ctx context.Context) ([]dao.Check, error) {
	checks, err := ps.db.Checks().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("could not get checks", err)
	}

	sort.Slice(checks, func(i, j int) bool {
		return checks[i].Created.Before(checks[j].Created)
	})

	return checks, nil
}

// GetCheck returns the recorded check with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no check with the ID exists,
// it will match serr.ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match serr.ErrDB.
func (ps PushdownServer) GetCheck(ctx context.Context, id uuid.UUID) (dao.Check, error) {
	check, err := ps.db.Checks().GetByID(ctx, id)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Check{}, serr.New("no check with that ID exists", serr.ErrNotFound)
		}
		return dao.Check{}, serr.WrapDB("could not get check", err)
	}

	return check, nil
}

// DeleteCheck deletes the recorded check with the given ID and returns the
// check as it was just before deletion.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no check with the ID exists,
// it will match serr.ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match serr.ErrDB.
func (ps PushdownServer) DeleteCheck(ctx context.Context, id uuid.UUID) (dao.Check, error) {
	check, err := ps.db.Checks().Delete(ctx, id)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Check{}, serr.New("no check with that ID exists", serr.ErrNotFound)
		}
		return dao.Check{}, serr.WrapDB("could not delete check", err)
	}

	return check, nil
}
