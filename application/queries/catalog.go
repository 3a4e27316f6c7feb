package queries

// ListToppingsQuery lists every topping class below PizzaTopping
type ListToppingsQuery struct{}

// Validate implements bus.Query
func (q ListToppingsQuery) Validate() error { return nil }

// ListCountriesQuery lists every individual typed as Country
type ListCountriesQuery struct{}

// Validate implements bus.Query
func (q ListCountriesQuery) Validate() error { return nil }

// ListPizzasQuery lists every class below NamedPizza
type ListPizzasQuery struct{}

// Validate implements bus.Query
func (q ListPizzasQuery) Validate() error { return nil }
