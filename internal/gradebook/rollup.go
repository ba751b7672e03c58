package gradebook

import (
	"sort"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

// RollupByCategory aggregates every configured item's score into
// per-type totals, then reconciles against the live course outline.
// Items resolving to total 0 are not-yet-configured placeholders and
// stay out of the denominators. When the outline lists more items of a
// type than the structure configures, the category total is padded
// using that type's average points per configured item; this is an
// estimate that keeps unconfigured items from inflating the category
// percentage, not exact accounting.
func (e *Engine) RollupByCategory(course *models.Course, studentEmail string, liveItems []models.CourseItemRef) map[models.ItemType]models.CategoryTotals {
	rollup := make(map[models.ItemType]models.CategoryTotals)

	// Attempted-only running sums, tracked aside because they feed a
	// single derived percentage and are not part of the output shape.
	type attemptedSums struct{ score, total float64 }
	attempted := make(map[models.ItemType]attemptedSums)

	structure := itemStructureOf(course)
	itemIDs := make([]string, 0, len(structure))
	for id := range structure {
		itemIDs = append(itemIDs, id)
	}
	// Map order varies per run; fixed order keeps float sums identical
	// across calls on the same snapshot.
	sort.Strings(itemIDs)

	for _, id := range itemIDs {
		cfg := structure[id]
		result := e.ScoreItem(id, course, studentEmail)
		if !result.Valid || result.Total == 0 {
			continue
		}

		totals := rollup[cfg.Type]
		totals.Score += result.Score
		totals.Total += result.Total
		totals.ItemCount++
		totals.TotalCount++
		if result.Attempted > 0 {
			totals.AttemptedCount++
			sums := attempted[cfg.Type]
			sums.score += result.Score
			sums.total += result.Total
			attempted[cfg.Type] = sums
		}
		if e.IsComplete(id, course, studentEmail) {
			totals.CompletedCount++
		}
		rollup[cfg.Type] = totals
	}

	padFromOutline(rollup, liveItems)

	for itemType, totals := range rollup {
		if totals.Total > 0 {
			totals.Percentage = totals.Score / totals.Total * 100
		}
		if sums := attempted[itemType]; totals.AttemptedCount > 0 && sums.total > 0 {
			p := sums.score / sums.total * 100
			totals.AttemptedPercentage = &p
		}
		if totals.TotalCount > 0 {
			totals.CompletionPercentage = float64(totals.CompletedCount) / float64(totals.TotalCount) * 100
		}
		rollup[itemType] = totals
	}
	return rollup
}

// padFromOutline raises category totals toward the live outline's item
// counts using the category's current average points per item.
func padFromOutline(rollup map[models.ItemType]models.CategoryTotals, liveItems []models.CourseItemRef) {
	liveCounts := make(map[models.ItemType]int)
	for _, ref := range liveItems {
		liveCounts[ref.Type]++
	}

	types := make([]models.ItemType, 0, len(liveCounts))
	for t := range liveCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, itemType := range types {
		live := liveCounts[itemType]
		totals := rollup[itemType]
		if live <= totals.ItemCount {
			continue
		}
		missing := live - totals.ItemCount
		if totals.ItemCount > 0 {
			avg := totals.Total / float64(totals.ItemCount)
			totals.Total += avg * float64(missing)
		}
		totals.TotalCount = live
		rollup[itemType] = totals
	}
}
