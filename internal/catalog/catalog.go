// Package catalog holds the static list of games and their top-up packages.
// The list is compiled into the binary and never changes at runtime.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"gopkg.in/yaml.v2"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrPackageNotFound = errors.New("package not found")
)

//go:embed catalog.yaml
var defaultData []byte

type Package struct {
	ID       string `yaml:"id" json:"id" validate:"required"`
	Name     string `yaml:"name" json:"name" validate:"required"`
	Amount   string `yaml:"amount" json:"amount" validate:"required"`
	Price    int64  `yaml:"price" json:"price" validate:"gt=0"`
	Currency string `yaml:"currency" json:"currency" validate:"required"`
}

type Game struct {
	ID       string    `yaml:"id" json:"id" validate:"required"`
	Name     string    `yaml:"name" json:"name" validate:"required"`
	Logo     string    `yaml:"logo" json:"logo" validate:"omitempty,url"`
	Packages []Package `yaml:"packages" json:"packages" validate:"min=1,unique=ID,dive"`
}

type document struct {
	Games []Game `yaml:"games" validate:"min=1,unique=ID,dive"`
}

// Provider is the read-only view of the catalog handed to services.
type Provider interface {
	Games() []Game
	Game(id string) (Game, error)
	Package(gameID, packageID string) (Game, Package, error)
}

// Catalog is an immutable Provider. Returned slices are copies.
type Catalog struct {
	games []Game
	byID  map[string]int
}

var _ Provider = (*Catalog)(nil)

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document

	err := yaml.UnmarshalStrict(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	err = schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	c := &Catalog{
		games: doc.Games,
		byID:  make(map[string]int, len(doc.Games)),
	}
	for i, g := range doc.Games {
		c.byID[g.ID] = i
	}

	return c, nil
}

func (c *Catalog) Games() []Game {
	out := make([]Game, len(c.games))
	for i, g := range c.games {
		out[i] = g.clone()
	}

	return out
}

func (c *Catalog) Game(id string) (Game, error) {
	i, ok := c.byID[id]
	if !ok {
		return Game{}, fmt.Errorf("%w: %q", ErrGameNotFound, id)
	}

	return c.games[i].clone(), nil
}

// Package resolves a package within a game. The game is returned too since
// orders record both display names.
func (c *Catalog) Package(gameID, packageID string) (Game, Package, error) {
	g, err := c.Game(gameID)
	if err != nil {
		return Game{}, Package{}, err
	}

	for _, p := range g.Packages {
		if p.ID == packageID {
			return g, p, nil
		}
	}

	return Game{}, Package{}, fmt.Errorf("%w: %q in game %q", ErrPackageNotFound, packageID, gameID)
}

func (g Game) clone() Game {
	g.Packages = append([]Package(nil), g.Packages...)
	return g
}
