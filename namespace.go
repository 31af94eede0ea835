package xmlwriter

import (
	"sort"
	"strconv"
	"strings"
)

// synthPrefix is the stem used for prefixes the writer invents when no
// declared, cached or suggested prefix can serve a namespace URI.
const synthPrefix = "__NS"

type nsBinding struct {
	prefix string
	uri    string
}

// nsContext tracks prefix/URI bindings with normal XML namespace scoping:
// one scope per open element, inner bindings shadow outer ones.
type nsContext struct {
	scopes [][]nsBinding
}

func newNSContext() nsContext {
	return nsContext{scopes: make([][]nsBinding, 0, initialStackDepth)}
}

func (c *nsContext) push() {
	c.scopes = append(c.scopes, nil)
}

func (c *nsContext) pop() {
	if len(c.scopes) > 0 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

func (c *nsContext) reset() {
	c.scopes = c.scopes[:0]
}

// declare binds prefix to uri in the innermost scope. If no scope is open
// (bindings requested outside the root element) a base scope is created.
func (c *nsContext) declare(prefix, uri string) {
	if len(c.scopes) == 0 {
		c.push()
	}
	top := len(c.scopes) - 1
	for i, b := range c.scopes[top] {
		if b.prefix == prefix {
			c.scopes[top][i].uri = uri
			return
		}
	}
	c.scopes[top] = append(c.scopes[top], nsBinding{prefix: prefix, uri: uri})
}

// uri returns the in-scope URI bound to prefix. The innermost binding wins.
func (c *nsContext) uri(prefix string) (string, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		for j := len(c.scopes[i]) - 1; j >= 0; j-- {
			if c.scopes[i][j].prefix == prefix {
				return c.scopes[i][j].uri, true
			}
		}
	}
	return "", false
}

// prefix returns a non-empty in-scope prefix bound to uri. The default
// prefix is never returned. Prefixes shadowed by an inner re-declaration to
// a different URI are skipped.
func (c *nsContext) prefix(uri string) (string, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		for j := len(c.scopes[i]) - 1; j >= 0; j-- {
			b := c.scopes[i][j]
			if b.prefix == "" || b.uri != uri {
				continue
			}
			if cur, ok := c.uri(b.prefix); ok && cur == uri {
				return b.prefix, true
			}
		}
	}
	return "", false
}

// declared returns the prefixes declared in the innermost scope, sorted so
// that xmlns attribute output is stable.
func (c *nsContext) declared() []string {
	if len(c.scopes) == 0 {
		return nil
	}
	top := c.scopes[len(c.scopes)-1]
	if len(top) == 0 {
		return nil
	}
	prefixes := make([]string, len(top))
	for i, b := range top {
		prefixes[i] = b.prefix
	}
	sort.Strings(prefixes)
	return prefixes
}

// findPrefix resolves the output prefix for a namespace URI. It never fails:
// when nothing else serves, a fresh __NS<n> prefix is synthesized. Candidate
// order: empty URI, default namespace (elements only), in-scope binding,
// previously resolved prefix, caller-suggested prefix, the qname's prefix
// portion, synthesized. Once resolved, the prefix is declared in the current
// scope and cached for the URI.
func (w *Writer) findPrefix(uri, qname string, isElement bool) string {
	defaultNS, haveDefault := w.ns.uri("")
	isAttr := !isElement

	if uri == "" {
		return ""
	}
	if isElement && haveDefault && uri == defaultNS {
		return ""
	}
	if p, ok := w.ns.prefix(uri); ok {
		return p
	}

	prefix, found := w.nsDecls[uri]
	if found && (((isAttr || haveDefault) && prefix == "") || w.prefixInUse(prefix)) {
		found = false
	}
	if !found {
		prefix, found = w.nsPrefixes[uri]
		if found && (((isAttr || haveDefault) && prefix == "") || w.prefixInUse(prefix)) {
			found = false
		}
	}
	if !found && qname != "" {
		if i := strings.IndexByte(qname, ':'); i >= 0 {
			prefix, found = qname[:i], true
		} else if isElement && !haveDefault {
			prefix, found = "", true
		}
	}
	if !found {
		prefix = w.createPrefix()
	}

	w.ns.declare(prefix, uri)
	w.nsDecls[uri] = prefix
	return prefix
}

func (w *Writer) prefixInUse(prefix string) bool {
	_, ok := w.ns.uri(prefix)
	return ok
}

// createPrefix synthesizes __NS1, __NS2, ... skipping values already bound
// in scope. The counter is per-writer and cleared by Reset.
func (w *Writer) createPrefix() string {
	for {
		w.nsPrefixCount++
		prefix := synthPrefix + strconv.Itoa(w.nsPrefixCount)
		if !w.prefixInUse(prefix) {
			return prefix
		}
	}
}

// declareRootNamespaces resolves every URI registered via AddNSRootDecl,
// in registration order, before any other resolution for the root element.
func (w *Writer) declareRootNamespaces() {
	for _, uri := range w.nsRootDecls {
		w.findPrefix(uri, "", true)
	}
}
