package filter

// KindAllowed reports whether an event kind passes the allow-list stage
// (true = keep). Unlike the path stages this one is permissive by default:
// disabled stage or empty allow-list passes everything. The incoming kind is
// normalized before the membership test; allow-list entries are expected to
// be canonical names.
func KindAllowed(kind string, cfg EventTypeConfig) bool {
	if !cfg.Enabled || len(cfg.AllowedTypes) == 0 {
		return true
	}
	k := NormalizeKind(kind)
	for _, allowed := range cfg.AllowedTypes {
		if allowed == k {
			return true
		}
	}
	return false
}
