package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseDBConnString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Database
		expectErr bool
	}{
		{
			name:   "inmem",
			input:  "inmem",
			expect: Database{Type: DatabaseInMemory},
		},
		{
			name:   "inmem is case-insensitive",
			input:  "INMEM",
			expect: Database{Type: DatabaseInMemory},
		},
		{
			name:   "sqlite with data dir",
			input:  "sqlite:/data/checks",
			expect: Database{Type: DatabaseSQLite, DataDir: "/data/checks"},
		},
		{
			name:   "sqlite data dir is trimmed",
			input:  "sqlite: /data/checks ",
			expect: Database{Type: DatabaseSQLite, DataDir: "/data/checks"},
		},
		{
			name:      "sqlite without data dir",
			input:     "sqlite",
			expectErr: true,
		},
		{
			name:      "inmem with params",
			input:     "inmem:/data",
			expectErr: true,
		},
		{
			name:      "unknown engine",
			input:     "postgres:somewhere",
			expectErr: true,
		},
		{
			name:      "none engine rejected",
			input:     "none",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseDBConnString(tc.input)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Config_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{}.FillDefaults()

	assert.Equal(DatabaseInMemory, cfg.DB.Type)
	assert.NoError(cfg.Validate())
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{
			name: "inmem DB",
			cfg:  Config{DB: Database{Type: DatabaseInMemory}},
		},
		{
			name: "sqlite DB with dir",
			cfg:  Config{DB: Database{Type: DatabaseSQLite, DataDir: "/data"}},
		},
		{
			name:      "sqlite DB without dir",
			cfg:       Config{DB: Database{Type: DatabaseSQLite}},
			expectErr: true,
		},
		{
			name:      "unset DB",
			cfg:       Config{},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.cfg.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}
