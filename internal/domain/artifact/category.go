package artifact

import "fmt"

// Category is a logical report type. The set is closed: every category maps
// 1:1 to a storage subfolder and a filename label.
type Category string

const (
	CategoryDensity             Category = "density"
	CategoryProctor             Category = "proctor"
	CategoryRebar               Category = "rebar"
	CategoryCompressiveStrength Category = "compressive-strength"
	CategoryCylinderPickup      Category = "cylinder-pickup"
	CategoryConcrete            Category = "concrete"
	CategoryAsphalt             Category = "asphalt"
)

var categoryFolders = map[Category]string{
	CategoryDensity:             "Density",
	CategoryProctor:             "Proctor",
	CategoryRebar:               "Rebar",
	CategoryCompressiveStrength: "Compressive Strength",
	CategoryCylinderPickup:      "Cylinder Pickup",
	CategoryConcrete:            "Concrete",
	CategoryAsphalt:             "Asphalt",
}

var categoryLabels = map[Category]string{
	CategoryDensity:             "Density",
	CategoryProctor:             "Proctor",
	CategoryRebar:               "Rebar",
	CategoryCompressiveStrength: "CompressiveStrength",
	CategoryCylinderPickup:      "CylinderPickup",
	CategoryConcrete:            "Concrete",
	CategoryAsphalt:             "Asphalt",
}

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryDensity,
		CategoryProctor,
		CategoryRebar,
		CategoryCompressiveStrength,
		CategoryCylinderPickup,
		CategoryConcrete,
		CategoryAsphalt,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryFolders[c]
	return ok
}

// Folder is the fixed subfolder name under a project root.
func (c Category) Folder() string {
	return categoryFolders[c]
}

// Label is the fixed token embedded in artifact filenames. Labels never
// contain underscores; the filename parser depends on that.
func (c Category) Label() string {
	return categoryLabels[c]
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}
