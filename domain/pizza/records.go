package pizza

import "encoding/json"

// ToppingDetail is one (pizza, topping, spiciness) combination
type ToppingDetail struct {
	Name    string `json:"name"`
	Topping string `json:"topping"`
	Spice   string `json:"spice"`
}

// LocalNames is a list of ontology local names
type LocalNames []string

// MarshalJSON renders a nil list as an empty array
func (n LocalNames) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(n))
}

// ToppingDetails is the payload of a toppings-by-pizza lookup
type ToppingDetails []ToppingDetail

// MarshalJSON renders a nil list as an empty array
func (d ToppingDetails) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ToppingDetail(d))
}
