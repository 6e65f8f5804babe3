package sat

// Registry performs translation between structured keys and the
// variables that appear in the SAT formula. Ids are handed out in
// first-seen order starting at 1 and are never reused or renumbered.
type Registry[K comparable] struct {
	vars map[K]Var
	keys []K
}

// NewRegistry returns an empty Registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{
		vars: make(map[K]Var),
	}
}

// Intern returns the variable corresponding to key, allocating the
// next unused id the first time key is seen.
func (r *Registry[K]) Intern(key K) Var {
	if v, ok := r.vars[key]; ok {
		return v
	}
	r.keys = append(r.keys, key)
	v := Var(len(r.keys))
	r.vars[key] = v
	return v
}

// Lookup returns the variable previously interned for key. Unlike
// Intern it never allocates.
func (r *Registry[K]) Lookup(key K) (Var, bool) {
	v, ok := r.vars[key]
	return v, ok
}

// Key returns the key v was issued for.
func (r *Registry[K]) Key(v Var) (K, bool) {
	if !r.Has(v) {
		var zero K
		return zero, false
	}
	return r.keys[v-1], true
}

// Has reports whether v was issued by r.
func (r *Registry[K]) Has(v Var) bool {
	return v >= 1 && int(v) <= len(r.keys)
}

// Len returns the number of variables issued so far.
func (r *Registry[K]) Len() int {
	return len(r.keys)
}

// Keys returns every interned key in id order, so that Keys()[i] is
// the key of Var(i+1).
func (r *Registry[K]) Keys() []K {
	return append([]K(nil), r.keys...)
}
