package news

import "strings"

// categoryKeywords gates which articles count as belonging to a category.
// news and general have no entry on purpose: those runs keep everything,
// time filtering and dedup already narrowed the set.
var categoryKeywords = map[string][]string{
	"sports": {
		"match", "game", "tournament", "league", "cup", "goal", "score",
		"scored", "team", "coach", "olympics", "cricket", "football",
		"soccer", "nba", "nfl", "fifa", "tennis", "grand slam",
	},
	"movies": {
		"film", "movie", "cinema", "box office", "trailer", "series",
		"show", "season", "episode", "netflix", "disney+", "prime video",
		"imdb", "rotten tomatoes", "hollywood", "bollywood", "cast",
		"director", "actor", "actress", "oscar", "award",
	},
	"tech": {
		"ai", "artificial intelligence", "machine learning", "software",
		"app", "startup", "cloud", "data center", "semiconductor", "chip",
		"processor", "nvidia", "intel", "amd", "microsoft", "google",
		"alphabet", "meta", "facebook", "apple", "iphone", "android",
		"cybersecurity", "hack", "breach", "blockchain", "crypto",
	},
	"finance": {
		"market", "stocks", "stock", "equity", "shares", "bond", "bonds",
		"treasury", "interest rate", "fed", "inflation", "recession",
		"earnings", "revenue", "profit", "loss", "bank", "loan", "credit",
		"fund", "investment", "investor",
	},
	"business": {
		"company", "corporate", "merger", "acquisition", "startup",
		"layoff", "restructuring", "revenue", "earnings", "profit", "loss",
		"ceo", "founder", "ipo", "shareholders", "board of directors",
	},
}

func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Matches reports whether an article belongs in the category. Categories
// without a keyword table accept everything.
func Matches(a Article, category string) bool {
	keywords, ok := categoryKeywords[strings.ToLower(category)]
	if !ok {
		return true
	}
	return containsAny(a.CategoryText(), keywords)
}

// FilterByCategory keeps the matching articles. When the filter would
// eliminate the whole batch the unfiltered batch comes back instead: an empty
// result page is worse than an imprecise one.
func FilterByCategory(articles []Article, category string) []Article {
	keywords, ok := categoryKeywords[strings.ToLower(category)]
	if !ok {
		return articles
	}

	matched := make([]Article, 0, len(articles))
	for _, a := range articles {
		if containsAny(a.CategoryText(), keywords) {
			matched = append(matched, a)
		}
	}
	if len(matched) == 0 {
		return articles
	}
	return matched
}
