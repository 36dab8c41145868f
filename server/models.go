package server

import (
	"time"

	"github.com/dekarrin/pushdown/internal/grammar"
	"github.com/dekarrin/pushdown/server/dao"
)

// CheckRequest is the request body accepted by POST /checks.
type CheckRequest struct {
	Word string `json:"word"`
}

// CheckModel is the wire representation of a recorded check.
type CheckModel struct {
	ID       string   `json:"id"`
	Word     string   `json:"word"`
	Accepted bool     `json:"accepted"`
	Trace    []string `json:"trace,omitempty"`
	Created  string   `json:"created"`
}

// RuleModel is the wire representation of a single production rule.
type RuleModel struct {
	Symbol      string   `json:"symbol"`
	Productions []string `json:"productions"`
}

// RulesModel is the response body of GET /rules.
type RulesModel struct {
	Start string      `json:"start"`
	Rules []RuleModel `json:"rules"`
}

// InfoModel is the response body of GET /info.
type InfoModel struct {
	Version       string `json:"version"`
	EngineVersion string `json:"engine_version"`
	Start         string `json:"start"`
}

func daoCheckToModel(c dao.Check) CheckModel {
	return CheckModel{
		ID:       c.ID.String(),
		Word:     c.Word,
		Accepted: c.Accepted,
		Trace:    c.Trace,
		Created:  c.Created.Format(time.RFC3339),
	}
}

func grammarToRulesModel(g grammar.Grammar) RulesModel {
	m := RulesModel{
		Start: g.StartSymbol(),
	}

	for _, r := range g.Rules() {
		rm := RuleModel{Symbol: r.NonTerminal}
		for _, p := range r.Productions {
			rm.Productions = append(rm.Productions, p.String())
		}
		m.Rules = append(m.Rules, rm)
	}

	return m
}
