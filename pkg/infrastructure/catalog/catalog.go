// Package catalog reads product lists from YAML files.
//
//	products:
//	  - name: Kopi Susu
//	    price: 18000
//	    stock: 12
package catalog

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"pos/pkg/domain/model"
	"pos/pkg/domain/service"
)

type Entry struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Stock int    `yaml:"stock"`
}

type fileYAML struct {
	Products []Entry `yaml:"products"`
}

func Parse(r io.Reader) ([]Entry, error) {
	var data fileYAML
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse catalog")
	}
	for i, entry := range data.Products {
		if entry.Name == "" {
			return nil, errors.Errorf("catalog entry %d has no name", i+1)
		}
		if _, err := decimal.NewFromString(entry.Price); err != nil {
			return nil, errors.Wrapf(err, "catalog entry %q has invalid price", entry.Name)
		}
	}
	return data.Products, nil
}

func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()
	return Parse(file)
}

// Import adds every entry as a new product, stopping at the first failure.
func Import(store service.StoreService, entries []Entry) ([]model.Product, error) {
	added := make([]model.Product, 0, len(entries))
	for _, entry := range entries {
		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			return added, errors.Wrapf(err, "catalog entry %q has invalid price", entry.Name)
		}
		product, err := store.AddProduct(entry.Name, price, entry.Stock)
		if err != nil {
			return added, errors.Wrapf(err, "failed to import %q", entry.Name)
		}
		added = append(added, product)
	}
	return added, nil
}
