package services

import (
	"sort"
	"strings"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// labelResolver resolves raw import labels to chart accounts, first by direct
// match on full name or account number, then through the mapping table.
type labelResolver struct {
	accounts map[string]domain.Account
	byName   map[string][]string
	byNumber map[string]string
	mappings map[domain.MappingKey]string
}

func newLabelResolver(accounts []domain.Account, mappings []domain.AccountMapping) *labelResolver {
	r := &labelResolver{
		accounts: make(map[string]domain.Account, len(accounts)),
		byName:   make(map[string][]string, len(accounts)),
		byNumber: make(map[string]string, len(accounts)),
		mappings: make(map[domain.MappingKey]string, len(mappings)),
	}
	for _, acc := range accounts {
		r.accounts[acc.AccountID] = acc
		name := strings.TrimSpace(acc.FullName)
		r.byName[name] = append(r.byName[name], acc.AccountID)
		r.byNumber[strings.TrimSpace(acc.AccountNumber)] = acc.AccountID
	}
	for _, m := range mappings {
		r.mappings[m.Key()] = m.ChartAccountID
	}
	return r
}

// direct matches label against full names, then account numbers. A full name
// shared by several accounts does not match.
func (r *labelResolver) direct(label string) (domain.Account, bool) {
	if ids := r.byName[label]; len(ids) == 1 {
		return r.accounts[ids[0]], true
	}
	if id, ok := r.byNumber[label]; ok {
		return r.accounts[id], true
	}
	return domain.Account{}, false
}

func (r *labelResolver) mapped(field domain.GLFieldType, label string) (domain.Account, bool) {
	id, ok := r.mappings[domain.MappingKey{Label: label, FieldType: field}]
	if !ok {
		return domain.Account{}, false
	}
	acc, ok := r.accounts[id]
	return acc, ok
}

func (r *labelResolver) hasMapping(field domain.GLFieldType, label string) bool {
	_, ok := r.mappings[domain.MappingKey{Label: label, FieldType: field}]
	return ok
}

// resolve returns the account for a label. viaMapping reports whether the
// mapping table was needed.
func (r *labelResolver) resolve(field domain.GLFieldType, label domain.Label, withMappings bool) (acc domain.Account, viaMapping bool, ok bool) {
	if label.Kind != domain.EntryKindAccount {
		return domain.Account{}, false, false
	}
	if acc, ok := r.direct(label.Text); ok {
		return acc, false, true
	}
	if !withMappings {
		return domain.Account{}, false, false
	}
	acc, ok = r.mapped(field, label.Text)
	return acc, ok, ok
}

// autoMapCandidates returns the active accounts label could mean, using the
// first tier that yields any: exact full name, exact number, "<number> " prefix.
func autoMapCandidates(label string, accounts []domain.Account) []string {
	tiers := []func(acc domain.Account) bool{
		func(acc domain.Account) bool { return strings.TrimSpace(acc.FullName) == label },
		func(acc domain.Account) bool { return strings.TrimSpace(acc.AccountNumber) == label },
		func(acc domain.Account) bool {
			number := strings.TrimSpace(acc.AccountNumber)
			return number != "" && strings.HasPrefix(label, number+" ")
		},
	}
	for _, match := range tiers {
		var ids []string
		for _, acc := range accounts {
			if acc.IsActive && match(acc) {
				ids = append(ids, acc.AccountID)
			}
		}
		if len(ids) > 0 {
			sort.Strings(ids)
			return ids
		}
	}
	return nil
}
