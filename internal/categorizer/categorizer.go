// Package categorizer post-processes extracted entries: it renames accounts to
// their aliases, keeps the selected account, optionally keeps only entries
// without a payee, and assigns payees from regex rules.
package categorizer

import (
	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/models"
)

// Options selects which entries Apply keeps.
type Options struct {
	// Account is the raw identifier or alias of the account to keep.
	Account string
	// EmptyPayeeOnly keeps only entries whose extracted payee is absent. Rules
	// still apply to the kept entries.
	EmptyPayeeOnly bool
}

// Categorizer holds the account aliases and the ordered payee rules.
type Categorizer struct {
	aliases map[string]string
	rules   []Rule
	logger  logging.Logger
}

// New creates a Categorizer. Rules are tried in the given order.
func New(aliases map[string]string, rules []Rule, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	copied := make(map[string]string, len(aliases))
	for account, alias := range aliases {
		copied[account] = alias
	}

	return &Categorizer{
		aliases: copied,
		rules:   append([]Rule(nil), rules...),
		logger:  logger,
	}
}

// ResolveAlias returns the alias of account, or account itself when it has none.
func (c *Categorizer) ResolveAlias(account string) string {
	if alias, ok := c.aliases[account]; ok {
		return alias
	}
	return account
}

// Apply processes entries in order and returns the kept ones. The input slice
// is not modified.
func (c *Categorizer) Apply(entries []models.Entry, opts Options) []models.Entry {
	target := c.ResolveAlias(opts.Account)
	logger := c.logger.WithFields(
		logging.Field{Key: logging.FieldAccount, Value: target},
		logging.Field{Key: logging.FieldStage, Value: "categorize"},
	)

	kept := make([]models.Entry, 0, len(entries))
	classified, selected := 0, 0
	var others []string

	for _, entry := range entries {
		entry.Account = c.ResolveAlias(entry.Account)
		if entry.Account != target {
			others = appendUnique(others, entry.Account)
			continue
		}
		selected++

		if opts.EmptyPayeeOnly && entry.HasPayee() {
			continue
		}

		if rule, ok := match(c.rules, entry.Remittance); ok {
			entry.Payee = models.StringPtr(rule.Label)
			classified++
			logger.Debug("Payee assigned by rule",
				logging.Field{Key: logging.FieldRule, Value: rule.Label},
				logging.Field{Key: logging.FieldPattern, Value: rule.Pattern.String()})
		}
		kept = append(kept, entry)
	}

	if selected == 0 {
		if suggestion, ok := closestAccount(target, others); ok {
			logger.Warn("No entries for account, did you mean another one?",
				logging.Field{Key: "suggestion", Value: suggestion})
		}
	}

	logger.Info("Categorized entries",
		logging.Field{Key: logging.FieldCount, Value: len(kept)},
		logging.Field{Key: logging.FieldDropped, Value: len(entries) - len(kept)},
		logging.Field{Key: "classified", Value: classified})
	return kept
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
