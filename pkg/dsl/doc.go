/*
Package dsl provides a fluent builder for defining hsm states from closures.

It is an alternative to declaring one Go type per state: useful for small leaf states,
tests and generated machines. The result is an ordinary hsm.Registry.

Example usage:

	b := dsl.New[*Agent]()

	b.State("alive").
		Describe("root of every agent").
		Seed("idle")

	b.State("idle").
		OnEnter(func(s *dsl.Func[*Agent]) { s.Owner().Say("waiting") }).
		Transition(func(s *dsl.Func[*Agent]) domain.Transition {
			if s.Owner().Noise > 0 {
				return domain.Sibling("alert", s.Owner().Noise)
			}
			return domain.None()
		})

	b.State("alert").
		OnEnterArgs(func(s *dsl.Func[*Agent], args domain.Args) { ... })

	reg, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	m := hsm.NewMachine(reg, "alive", agent)
*/
package dsl
