package generator

import (
	"fmt"
	"strings"
)

// Theme is the subject of a coloring page.
type Theme string

const (
	Animals    Theme = "animals"
	Princesses Theme = "princesses"
	Buildings  Theme = "buildings"
	Vehicles   Theme = "vehicles"
	Dinosaurs  Theme = "dinosaurs"
	Space      Theme = "space"
	Robots     Theme = "robots"
	Ocean      Theme = "ocean"
)

var labels = map[Theme]string{
	Animals:    "Animaux",
	Princesses: "Princesses",
	Buildings:  "Bâtiments",
	Vehicles:   "Véhicules",
	Dinosaurs:  "Dinosaures",
	Space:      "Espace",
	Robots:     "Robots",
	Ocean:      "Sous l'Océan",
}

// Themes returns every theme in presentation order.
func Themes() []Theme {
	return []Theme{Animals, Princesses, Buildings, Vehicles, Dinosaurs, Space, Robots, Ocean}
}

// Label returns the name shown to the user.
func (t Theme) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

// ParseTheme matches name against the theme identifiers and labels.
func ParseTheme(name string) (Theme, error) {
	name = strings.TrimSpace(name)
	for _, t := range Themes() {
		if strings.EqualFold(string(t), name) || strings.EqualFold(t.Label(), name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q", name)
}
