package pdg

// topLevelGrammar is the top-level structure containing all keys in a complete
// PDG 'GRAMMAR' type file.
type topLevelGrammar struct {
	Format  string      `toml:"format"`
	Type    string      `toml:"type"`
	Grammar grammarMeta `toml:"grammar"`
	Rules   []rule      `toml:"rule"`
}

type grammarMeta struct {
	Start string `toml:"start"`
}

type rule struct {
	Symbol      string   `toml:"symbol"`
	Productions []string `toml:"productions"`
}
