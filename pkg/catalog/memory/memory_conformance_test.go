package memory_test

import (
	"testing"

	"github.com/nilium/snowball/pkg/catalog"
	"github.com/nilium/snowball/pkg/catalog/catalogtest"
	"github.com/nilium/snowball/pkg/catalog/memory"
)

func TestConformance(t *testing.T) {
	catalogtest.RunConformanceSuite(t, func(t *testing.T) catalog.Store {
		return memory.New()
	})
}
