package kourasync

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// defaultSymbols is the built-in brokerage-code to ledger-symbol table.
// Symbols use the GF_ prefix Ghostfolio reserves for manual assets.
var defaultSymbols = map[string]string{
	"810001": "GF_KOURACASH",  // Cash Fund
	"810002": "GF_KOURAFI",    // Fixed Interest Fund
	"810003": "GF_KOURANZEQ",  // NZ Equities Fund
	"810004": "GF_KOURAUSEQ",  // US Equities Fund
	"810005": "GF_KOURAROWEQ", // Rest of World Equities Fund
	"810006": "GF_KOURAEMEQ",  // Emerging Markets Equities Fund
	"810007": "GF_KOURABTC",   // Bitcoin Fund
	"810008": "GF_KOURACLEAN", // Clean Energy Fund
	"810009": "GF_KOURAPROP",  // Property Fund
	"810010": "GF_KOURASTRAT", // Strategic Growth Fund
}

// defaultNames carries a display name per fund code, used when registering
// the manual assets in the ledger.
var defaultNames = map[string]string{
	"810001": "Koura Cash Fund",
	"810002": "Koura Fixed Interest Fund",
	"810003": "Koura NZ Equities Fund",
	"810004": "Koura US Equities Fund",
	"810005": "Koura Rest of World Equities Fund",
	"810006": "Koura Emerging Markets Equities Fund",
	"810007": "Koura Bitcoin Fund",
	"810008": "Koura Clean Energy Fund",
	"810009": "Koura Property Fund",
	"810010": "Koura Strategic Growth Fund",
}

// FundMapping translates brokerage fund codes into ledger asset symbols.
// It is seeded from the built-in table and optionally overlaid by a YAML
// file at startup; construct one and pass it around, it is read-only after
// that.
type FundMapping struct {
	symbols map[string]string
}

// NewFundMapping returns the built-in mapping.
func NewFundMapping() *FundMapping {
	return &FundMapping{symbols: maps.Clone(defaultSymbols)}
}

// LoadFundMapping returns the built-in mapping overlaid with the
// "symbol_mapping" table from the given YAML file. A missing file is not an
// error; the built-in mapping is returned unchanged.
func LoadFundMapping(file string) (*FundMapping, error) {
	m := NewFundMapping()

	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read mapping file %q: %w", file, err)
	}

	var config struct {
		SymbolMapping map[string]string `yaml:"symbol_mapping"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("cannot parse mapping file %q: %w", file, err)
	}

	maps.Copy(m.symbols, config.SymbolMapping)
	if len(config.SymbolMapping) > 0 {
		log.Printf("loaded %d custom symbol mappings from %s", len(config.SymbolMapping), file)
	}
	return m, nil
}

// Symbol resolves a brokerage fund code to a ledger symbol.
// ok is false for unmapped codes.
func (m *FundMapping) Symbol(code string) (symbol string, ok bool) {
	symbol, ok = m.symbols[code]
	return
}

// Name returns a display name for a fund code, falling back to the symbol
// for codes added through the overlay file.
func (m *FundMapping) Name(code string) string {
	if name, ok := defaultNames[code]; ok {
		return name
	}
	symbol, _ := m.Symbol(code)
	return symbol
}

// Codes returns all mapped fund codes, sorted.
func (m *FundMapping) Codes() []string {
	return slices.Sorted(maps.Keys(m.symbols))
}
