package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/openkraft/devkit/internal/domain"
	"github.com/openkraft/devkit/internal/domain/recipes"
	"gopkg.in/yaml.v3"
)

// Loader implements domain.RecipeLoader. A reference is either the name of a
// built-in recipe or a path to a .yaml, .yml or .toml recipe file.
type Loader struct{}

func New() *Loader {
	return &Loader{}
}

func (l *Loader) Load(ref string) (*domain.Recipe, error) {
	if ref == "" {
		ref = domain.DefaultRecipe
	}
	if r, ok := recipes.Lookup(ref); ok {
		return &r, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("recipe %q is neither a built-in (%s) nor a readable file: %w",
				ref, strings.Join(recipes.Names(), ", "), err)
		}
		return nil, fmt.Errorf("reading recipe: %w", err)
	}

	var r domain.Recipe
	switch ext := strings.ToLower(filepath.Ext(ref)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ref, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &r); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ref, err)
		}
	default:
		return nil, fmt.Errorf("unsupported recipe format %q (use .yaml, .yml or .toml)", ext)
	}

	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe %s: %w", ref, err)
	}
	return &r, nil
}
