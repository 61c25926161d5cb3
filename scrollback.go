package headlessterm

// ConvertScrollback copies as many lines as fit from an old scrollback
// provider into a newly constructed one, preserving order and wrap flags.
// This implements the spec's "transition between types" requirement: when
// an embedder changes history policy mid-session, existing lines should
// survive the switch up to the new backend's capacity.
func ConvertScrollback(old, next ScrollbackProvider) {
	if old == nil || next == nil {
		return
	}

	n := old.Len()
	start := 0
	if max := next.MaxLines(); max > 0 && n > max {
		start = n - max
	}

	for i := start; i < n; i++ {
		next.Push(old.Line(i), old.IsWrapped(i))
	}
}
