// Package switchboard is a declarative, name-keyed service container. It
// turns layered definition documents into a graph of lazily-built
// singletons: each service is a named raw value, services refer to each
// other with bracketed tokens, and factory invocations are mappings whose
// reserved key names a registered symbol.
//
// # Definitions
//
// A definition is any already-parsed value: scalars pass through as
// literals, a string that is exactly one bracketed token is a reference to
// another service, and mappings and sequences are composites resolved
// element by element. A mapping that carries the factory key (":" by
// default) describes a factory call:
//
//	db:
//	  ":": ["sqlite.Open", "file:app.db"]
//
//	repo:
//	  ":": myapp.NewRepository
//	  db: <db>
//
// Resolving "repo" first builds "db", then invokes the registered
// myapp.NewRepository symbol with the built instance as its keyword
// argument. Positional arguments ride along in the factory key itself as
// a sequence headed by the symbol path; keyword arguments bind to the
// factory's trailing options struct (or map[string]any) parameter.
//
// A literal that must start with "<" is escaped by doubling: "<<secret>"
// resolves to the string "<secret>".
//
// # Symbols
//
// Go has no runtime import mechanism, so dotted symbol paths resolve
// against a Registry populated by the application:
//
//	c := switchboard.New()
//	c.Register("sqlite.Open", sqlite.Open)
//	c.Register("myapp.NewRepository", myapp.NewRepository)
//	c.LoadFile("base.yaml")
//	c.LoadFile("override.yaml", switchboard.Optional())
//
//	repo, err := switchboard.Resolve[*myapp.Repository](c, "repo")
//
// Path segments beyond a registered symbol are traversed reflectively, so
// "store.Users.Find" can address a method on a registered object.
//
// # Semantics
//
// Every name is built at most once per container; later Gets return the
// identical instance. Redefining a name never rebuilds an existing
// instance (Forget or Expire force that explicitly). Reference cycles are
// detected and reported with the full chain. Failures (unknown names,
// unresolvable symbols, factory errors) surface synchronously, are never
// cached, and a retried Get attempts the build again.
//
// Containers are safe for concurrent use: racing first-time callers of the
// same name agree on one build, and distinct names build independently.
package switchboard
