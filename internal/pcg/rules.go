package pcg

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// FixedPosition pins an account prefix to one balance-sheet side
// regardless of its balance sign.
type FixedPosition struct {
	Pattern string `yaml:"pattern"`
	Side    Side   `yaml:"side"`
}

// DoubleRoot declares an account root whose sub-accounts are partitioned
// by the sign of their own balance.
type DoubleRoot struct {
	Root           string `yaml:"root"`
	AssetLabel     string `yaml:"asset_label"`
	LiabilityLabel string `yaml:"liability_label"`
}

// RuleConfig is the on-disk shape of the rule table.
type RuleConfig struct {
	Labels          map[string]string `yaml:"labels"`
	FixedPositions  []FixedPosition   `yaml:"fixed_positions"`
	DoublePositions []DoubleRoot      `yaml:"double_positions"`
	ContraMap       map[string]string `yaml:"contra_map"`
}

// RuleTable is the validated, in-memory rule set. Immutable after load.
type RuleTable struct {
	labels    prefixIndex[string]
	fixed     prefixIndex[Side]
	doubles   prefixIndex[DoubleRoot]
	contraMap map[string]string
}

// DefaultTable loads the embedded rule table.
func DefaultTable() (*RuleTable, error) {
	return parseTable(defaultRules)
}

// LoadTable reads a rule table from a YAML file.
func LoadTable(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule table: %w", err)
	}
	t, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("rule table %s: %w", path, err)
	}
	return t, nil
}

func parseTable(data []byte) (*RuleTable, error) {
	var cfg RuleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing rule table: %w", err)
	}
	return NewRuleTable(cfg)
}

// NewRuleTable validates a RuleConfig and builds the lookup indexes.
// Ambiguous configuration (duplicate patterns, empty patterns, unknown
// sides) is rejected here, not at classification time.
func NewRuleTable(cfg RuleConfig) (*RuleTable, error) {
	t := &RuleTable{
		labels:    newPrefixIndex[string](),
		fixed:     newPrefixIndex[Side](),
		doubles:   newPrefixIndex[DoubleRoot](),
		contraMap: make(map[string]string, len(cfg.ContraMap)),
	}

	for pattern, label := range cfg.Labels {
		if err := t.labels.add(pattern, label); err != nil {
			return nil, fmt.Errorf("labels: %w", err)
		}
	}

	for _, fp := range cfg.FixedPositions {
		if fp.Side != SideAsset && fp.Side != SideLiability {
			return nil, fmt.Errorf("fixed position %q: invalid side %q", fp.Pattern, fp.Side)
		}
		if err := t.fixed.add(fp.Pattern, fp.Side); err != nil {
			return nil, fmt.Errorf("fixed positions: %w", err)
		}
	}

	for _, dr := range cfg.DoublePositions {
		if err := t.doubles.add(dr.Root, dr); err != nil {
			return nil, fmt.Errorf("double positions: %w", err)
		}
	}

	for contra, gross := range cfg.ContraMap {
		if contra == "" || gross == "" {
			return nil, fmt.Errorf("contra map: empty pattern")
		}
		t.contraMap[contra] = gross
	}

	if err := validateClassDomains(t); err != nil {
		return nil, err
	}
	return t, nil
}

// prefixIndex resolves an account number to the value of its longest
// registered prefix. Lookup probes the account number from full length
// down to one character, so cost is bounded by account-number length,
// not table size.
type prefixIndex[T any] struct {
	byPattern map[string]T
	maxLen    int
}

func newPrefixIndex[T any]() prefixIndex[T] {
	return prefixIndex[T]{byPattern: make(map[string]T)}
}

func (ix *prefixIndex[T]) add(pattern string, v T) error {
	if pattern == "" {
		return fmt.Errorf("empty pattern")
	}
	if _, dup := ix.byPattern[pattern]; dup {
		return fmt.Errorf("duplicate pattern %q", pattern)
	}
	ix.byPattern[pattern] = v
	if len(pattern) > ix.maxLen {
		ix.maxLen = len(pattern)
	}
	return nil
}

// lookup returns the value of the longest prefix of account present in
// the index, with the matched length.
func (ix *prefixIndex[T]) lookup(account string) (T, int, bool) {
	n := len(account)
	if n > ix.maxLen {
		n = ix.maxLen
	}
	for k := n; k >= 1; k-- {
		if v, ok := ix.byPattern[account[:k]]; ok {
			return v, k, true
		}
	}
	var zero T
	return zero, 0, false
}

// ContraTarget returns the 2-digit gross root a contra (amortization or
// depreciation) account nets against. Falls back to dropping the 8/9
// second digit when no explicit mapping exists.
func (t *RuleTable) ContraTarget(account string) (string, bool) {
	if !IsContraAccount(account) {
		return "", false
	}
	for k := len(account); k >= 2; k-- {
		if gross, ok := t.contraMap[account[:k]]; ok {
			return gross, true
		}
	}
	// Heuristic: 28154 -> 2154, presented at 2-digit granularity -> "21".
	if len(account) >= 3 {
		reduced := account[:1] + account[2:]
		return reduced[:2], true
	}
	return account[:1] + "0", true
}

// IsContraAccount reports whether an account is an amortization or
// depreciation contra account (classes 28/29/39/49/59).
func IsContraAccount(account string) bool {
	if len(account) < 2 {
		return false
	}
	switch account[:2] {
	case "28", "29", "39", "49", "59":
		return true
	}
	return false
}

// validateClassDomains rejects rule tables that route income accounts to
// the balance sheet: classes 6 and 7 never appear in fixed positions or
// double roots.
func validateClassDomains(t *RuleTable) error {
	for pattern := range t.fixed.byPattern {
		if strings.HasPrefix(pattern, "6") || strings.HasPrefix(pattern, "7") {
			return fmt.Errorf("fixed position %q: classes 6-7 belong to the income statement", pattern)
		}
	}
	for root := range t.doubles.byPattern {
		if strings.HasPrefix(root, "6") || strings.HasPrefix(root, "7") {
			return fmt.Errorf("double position %q: classes 6-7 belong to the income statement", root)
		}
	}
	return nil
}
