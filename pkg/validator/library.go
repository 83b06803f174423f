package validator

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"
)

// Library is a registry of validators keyed by ID. Registration is meant to
// happen at startup; lookups are safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	funcs    map[ID]Func
	patterns sync.Map // pattern body -> *regexp.Regexp
}

// New returns an empty library.
func New() *Library {
	return &Library{funcs: make(map[ID]Func)}
}

// Default returns a new library with every built-in validator registered.
func Default() *Library {
	l := New()
	for id, fn := range l.builtins() {
		l.funcs[id] = fn
	}
	return l
}

func (l *Library) builtins() map[ID]Func {
	return map[ID]Func{
		Equal:     validateEqual,
		NotEqual:  validateNotEqual,
		Filled:    validateFilled,
		Blank:     validateBlank,
		Valid:     validateValid,
		RangeRule: validateRange,
		Min:       validateMin,
		Max:       validateMax,
		Length:    validateLength,
		MinLength: validateMinLength,
		MaxLength: validateMaxLength,
		Submitted: validateSubmitted,
		Email:     validateEmail,
		URL:       validateURL,
		Pattern:   l.validatePattern,
		Integer:   validateInteger,
		Float:     validateFloat,
		FileSize:  validateFileSize,
		MimeType:  validateMimeType,
		Image:     validateImage,
	}
}

// Register adds a validator. It fails if the id is already taken.
func (l *Library) Register(id ID, fn Func) error {
	if id == "" || fn == nil {
		return fmt.Errorf("%w: empty id or nil func", ErrInvalidArgument)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.funcs[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateValidator, id)
	}
	l.funcs[id] = fn
	return nil
}

// Replace registers fn under id, overriding any previous validator.
func (l *Library) Replace(id ID, fn Func) {
	if id == "" || fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.funcs[id] = fn
}

// Lookup returns the validator registered under id.
func (l *Library) Lookup(id ID) (Func, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn, ok := l.funcs[id]
	return fn, ok
}

// Has reports whether id is registered.
func (l *Library) Has(id ID) bool {
	_, ok := l.Lookup(id)
	return ok
}

// IDs returns the registered ids in sorted order.
func (l *Library) IDs() []ID {
	l.mu.RLock()
	ids := make([]ID, 0, len(l.funcs))
	for id := range l.funcs {
		ids = append(ids, id)
	}
	l.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// compile returns the anchored, cached regular expression for a pattern body.
func (l *Library) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := l.patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, errors.Join(ErrInvalidPattern, err)
	}
	actual, _ := l.patterns.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}
