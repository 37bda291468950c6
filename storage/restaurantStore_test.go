package storage

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildSearchFilter(t *testing.T) {
	t.Run("city only", func(t *testing.T) {
		filter := buildSearchFilter(SearchParams{City: "London"})

		city, ok := filter["city"].(primitive.Regex)
		if !ok {
			t.Fatalf("city filter is %T, want case-insensitive regex", filter["city"])
		}
		if city.Pattern != "^London$" || city.Options != "i" {
			t.Errorf("city regex = %q/%q, want anchored case-insensitive match", city.Pattern, city.Options)
		}
		if _, present := filter["cuisines"]; present {
			t.Error("cuisine filter present without selected cuisines")
		}
		if _, present := filter["$or"]; present {
			t.Error("text filter present without search query")
		}
	})

	t.Run("selected cuisines all required", func(t *testing.T) {
		filter := buildSearchFilter(SearchParams{
			City:             "London",
			SelectedCuisines: []string{"Pizza", "Pasta"},
		})

		clause, ok := filter["cuisines"].(bson.M)
		if !ok {
			t.Fatalf("cuisines filter is %T, want bson.M", filter["cuisines"])
		}
		regexes, ok := clause["$all"].([]primitive.Regex)
		if !ok || len(regexes) != 2 {
			t.Fatalf("cuisines filter = %v, want $all with two regexes", clause)
		}
		if regexes[0].Pattern != "^Pizza$" || regexes[1].Pattern != "^Pasta$" {
			t.Errorf("cuisine patterns = %q, %q", regexes[0].Pattern, regexes[1].Pattern)
		}
	})

	t.Run("search query matches name or cuisines", func(t *testing.T) {
		filter := buildSearchFilter(SearchParams{City: "London", SearchQuery: "nap"})

		or, ok := filter["$or"].([]bson.M)
		if !ok || len(or) != 2 {
			t.Fatalf("$or = %v, want name and cuisines branches", filter["$or"])
		}
		name, ok := or[0]["name"].(primitive.Regex)
		if !ok || name.Pattern != "nap" || name.Options != "i" {
			t.Errorf("name branch = %v, want unanchored case-insensitive regex", or[0])
		}
	})

	t.Run("regex metacharacters are quoted", func(t *testing.T) {
		filter := buildSearchFilter(SearchParams{City: "London", SearchQuery: "a.c*"})

		or := filter["$or"].([]bson.M)
		name := or[0]["name"].(primitive.Regex)
		if name.Pattern != `a\.c\*` {
			t.Errorf("pattern = %q, metacharacters not quoted", name.Pattern)
		}
	})
}

func TestSearchSort(t *testing.T) {
	tests := []struct {
		option    string
		wantKey   string
		wantOrder int
	}{
		{"deliveryPrice", "delivery_price", 1},
		{"estimatedDeliveryTime", "estimated_delivery_time", 1},
		{"bestMatch", "updated_at", -1},
		{"", "updated_at", -1},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			sort := searchSort(tt.option)
			if len(sort) != 1 {
				t.Fatalf("sort has %d keys, want 1", len(sort))
			}
			if sort[0].Key != tt.wantKey || sort[0].Value != tt.wantOrder {
				t.Errorf("sort = {%s: %v}, want {%s: %d}", sort[0].Key, sort[0].Value, tt.wantKey, tt.wantOrder)
			}
		})
	}
}

func TestSearchKey(t *testing.T) {
	a := SearchKey(SearchParams{City: "London", SearchQuery: "pizza", Page: 1})
	b := SearchKey(SearchParams{City: "london", SearchQuery: "PIZZA", Page: 1})
	if a != b {
		t.Errorf("keys differ by case only: %q vs %q", a, b)
	}

	c := SearchKey(SearchParams{City: "London", SearchQuery: "pizza", Page: 2})
	if a == c {
		t.Error("different pages share a cache key")
	}
}

func TestNilSearchCacheMisses(t *testing.T) {
	var cache *SearchCache
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "any"); ok {
		t.Error("nil cache reported a hit")
	}
	// Set on a nil cache must be a no-op, not a panic.
	cache.Set(ctx, "any", []byte("x"))
}
