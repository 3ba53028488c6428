package cart

import (
	"errors"
	"math"
)

var (
	ErrIndexOutOfRange = errors.New("cart: index out of range")
	ErrInvalidQuantity = errors.New("cart: invalid quantity")
)

// Item représente UN exemplaire d'un produit dans le panier.
// N exemplaires du même produit = N entrées (pas de champ quantité).
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

// Snapshot est une projection figée du panier au moment de l'appel.
// Les mutations ultérieures du panier ne s'y reflètent pas.
type Snapshot struct {
	Items []Item
	Total float64
}

// Cart est le panier en mémoire de la session active. Un seul écrivain
// (le flux d'interactions de la session), pas de verrouillage.
type Cart struct {
	items     []Item
	listeners []func()
}

func New() *Cart {
	return &Cart{}
}

// OnChange enregistre un observateur notifié après chaque mutation
// effective (rendu du badge et de la liste côté vue).
func (c *Cart) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

func (c *Cart) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}

// AddItem ajoute un exemplaire. Un prix NaN ou négatif est rejeté
// silencieusement : rien n'est stocké, personne n'est notifié.
func (c *Cart) AddItem(productID, name string, unitPrice float64, image string) {
	if math.IsNaN(unitPrice) || unitPrice < 0 {
		return
	}
	c.items = append(c.items, Item{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Image:     image,
	})
	c.notify()
}

// AddItemsBulk ajoute quantity exemplaires d'un coup (fiche produit).
func (c *Cart) AddItemsBulk(productID, name string, unitPrice float64, image string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := 0; i < quantity; i++ {
		c.AddItem(productID, name, unitPrice, image)
	}
	return nil
}

// RemoveItemAt retire l'exemplaire à la position donnée.
// Le panier reste inchangé si l'index est invalide.
func (c *Cart) RemoveItemAt(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	c.notify()
	return nil
}

// Clear vide le panier (après une commande confirmée).
func (c *Cart) Clear() {
	c.items = nil
	c.notify()
}

// Total est la somme des prix unitaires. O(n), pas de cache : les
// paniers restent petits.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.UnitPrice
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Items renvoie une copie de la liste courante.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Snapshot fige articles et total au moment de l'appel.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Items: c.Items(),
		Total: c.Total(),
	}
}
