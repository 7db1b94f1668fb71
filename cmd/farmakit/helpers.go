package main

import (
	"context"

	"github.com/spf13/viper"

	"github.com/blerta-dev/farmakit/internal/classify"
	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/config"
	"github.com/blerta-dev/farmakit/internal/storage"
)

// openStore opens the catalog database and applies pending migrations.
// Callers own the returned store and must Close it.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := config.ExpandPath(viper.GetString("db.path"))
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, common.NewUserError("failed to open catalog database", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("failed to migrate catalog database", err)
	}

	return store, nil
}

// buildClassifier loads the rule table, preferring an explicit --rules
// path, then the configured rules file, then the built-in table.
func buildClassifier(rulesPath string) (*classify.Classifier, error) {
	if rulesPath == "" {
		rulesPath = viper.GetString("classify.rules_path")
	}

	rules := classify.DefaultRules()
	if rulesPath != "" {
		loaded, err := classify.LoadRules(config.ExpandPath(rulesPath))
		if err != nil {
			return nil, common.NewUserError("failed to load rule table", err)
		}
		rules = loaded
	}

	classifier, err := classify.NewClassifier(rules)
	if err != nil {
		return nil, common.NewUserError("failed to compile rule table", err)
	}
	return classifier, nil
}

// imageDirs resolves the image directory list from flags or config.
func imageDirs(flagDirs []string) ([]string, error) {
	dirs := flagDirs
	if len(dirs) == 0 {
		dirs = viper.GetStringSlice("images.dirs")
	}
	if len(dirs) == 0 {
		return nil, common.NewUserError("no image directories configured, set images.dirs in the config file or pass them as flags", common.ErrMissingConfig)
	}

	expanded := make([]string, len(dirs))
	for i, d := range dirs {
		expanded[i] = config.ExpandPath(d)
	}
	return expanded, nil
}

// minScore resolves the match threshold: --min-score wins, then the strict
// threshold when --strict is set, then the configured default.
func minScore(flagScore int, strict bool) int {
	if flagScore > 0 {
		return flagScore
	}
	if strict {
		return viper.GetInt("match.strict_min_score")
	}
	return viper.GetInt("match.min_score")
}
