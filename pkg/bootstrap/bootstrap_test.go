package bootstrap

import "testing"

func TestPreParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantConfig  string
		wantVerbose bool
	}{
		{
			name: "no flags",
			args: []string{"git-pr", "list"},
		},
		{
			name:       "config with separate value",
			args:       []string{"git-pr", "--config", "/tmp/c.toml", "list"},
			wantConfig: "/tmp/c.toml",
		},
		{
			name:       "config with equals",
			args:       []string{"git-pr", "--config=/tmp/c.toml", "list"},
			wantConfig: "/tmp/c.toml",
		},
		{
			name:       "short config flag",
			args:       []string{"git-pr", "-C", "/tmp/c.toml"},
			wantConfig: "/tmp/c.toml",
		},
		{
			name:       "short config flag glued",
			args:       []string{"git-pr", "-C/tmp/c.toml"},
			wantConfig: "/tmp/c.toml",
		},
		{
			name:        "verbose long",
			args:        []string{"git-pr", "--verbose", "create", "hotfix"},
			wantVerbose: true,
		},
		{
			name:        "verbose short",
			args:        []string{"git-pr", "-v"},
			wantVerbose: true,
		},
		{
			name: "stops at subcommand",
			args: []string{"git-pr", "create", "--verbose"},
		},
		{
			name: "stops at end-of-options marker",
			args: []string{"git-pr", "--", "--verbose"},
		},
		{
			name:        "both flags",
			args:        []string{"git-pr", "-v", "--config", "/tmp/c.toml", "list"},
			wantConfig:  "/tmp/c.toml",
			wantVerbose: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile, verbose := PreParseGlobalFlags(tt.args)
			if cfgFile != tt.wantConfig {
				t.Errorf("PreParseGlobalFlags() config = %q, want %q", cfgFile, tt.wantConfig)
			}
			if verbose != tt.wantVerbose {
				t.Errorf("PreParseGlobalFlags() verbose = %v, want %v", verbose, tt.wantVerbose)
			}
		})
	}
}
