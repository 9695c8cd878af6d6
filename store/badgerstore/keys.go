package badgerstore

import (
	"strings"

	"github.com/poiesic/lore/core"
)

// Key prefix for knowledge entries
const entryPrefix = "knowent"

// escapeComponent makes a key component safe to join with "_".
// Without escaping, distinct triples whose components contain underscores
// would render to the same badger key (tenant "a" + source "b_c" vs
// tenant "a_b" + source "c").
func escapeComponent(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	return strings.ReplaceAll(s, "_", "%5F")
}

// makeEntryKey generates the storage key for an entry's composite key.
// Format: prefix:tenant_source_session, components escaped.
func makeEntryKey(key core.EntryKey) []byte {
	return []byte(entryPrefix + ":" +
		escapeComponent(key.Tenant) + "_" +
		escapeComponent(key.SourceID) + "_" +
		escapeComponent(key.Session))
}

// makeTenantPrefix generates the scan prefix covering one tenant's entries.
func makeTenantPrefix(tenant string) []byte {
	return []byte(entryPrefix + ":" + escapeComponent(tenant) + "_")
}
