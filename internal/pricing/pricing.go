package pricing

import (
	"math"
	"time"

	"shopfront/internal/domain"
)

// Pure price/promotion helpers over a catalog item. Validity depends on
// the clock, so every function that touches the promotion takes an
// explicit now; identical inputs always give identical outputs.

// IsValidPromotion reports whether the item's promotion can be applied:
// the flag is set, a promotion price exists, it undercuts the normal
// price without being free, and the end date (if any) has not passed.
func IsValidPromotion(it domain.CatalogItem, now time.Time) bool {
	if !it.OnPromotion || it.PromotionPrice == nil {
		return false
	}
	p := *it.PromotionPrice
	if p <= 0 || p >= it.Price {
		return false
	}
	if it.PromotionEndsAt != nil && !it.PromotionEndsAt.After(now) {
		return false
	}
	return true
}

func PriceWithTax(priceExclTax, taxRate float64) float64 {
	return priceExclTax * (1 + taxRate)
}

// ApplicablePriceExclTax is the promotion price when the promotion is
// valid, otherwise the normal selling price.
func ApplicablePriceExclTax(it domain.CatalogItem, now time.Time) float64 {
	if IsValidPromotion(it, now) {
		return *it.PromotionPrice
	}
	return it.Price
}

func ApplicablePriceInclTax(it domain.CatalogItem, now time.Time) float64 {
	return PriceWithTax(ApplicablePriceExclTax(it, now), it.TaxRate)
}

// DiscountPercentage is the promotion's discount in whole percent,
// rounded half-up. 0 without a valid promotion.
func DiscountPercentage(it domain.CatalogItem, now time.Time) int {
	if !IsValidPromotion(it, now) {
		return 0
	}
	return int(math.Floor((1-*it.PromotionPrice/it.Price)*100 + 0.5))
}

// SavingsInclTax is the tax-inclusive difference between the normal and
// the promotional price. 0 without a valid promotion.
func SavingsInclTax(it domain.CatalogItem, now time.Time) float64 {
	if !IsValidPromotion(it, now) {
		return 0
	}
	return PriceWithTax(it.Price, it.TaxRate) - PriceWithTax(*it.PromotionPrice, it.TaxRate)
}

// IsPromotionExpiringSoon reports whether a valid promotion ends within
// the next 3 days. Days remaining are the calendar delta divided by 24h
// rounded up, so a promotion expiring in two hours still counts as one
// day remaining.
func IsPromotionExpiringSoon(it domain.CatalogItem, now time.Time) bool {
	if !IsValidPromotion(it, now) || it.PromotionEndsAt == nil {
		return false
	}
	days := int(math.Ceil(it.PromotionEndsAt.Sub(now).Hours() / 24))
	return days > 0 && days <= 3
}
