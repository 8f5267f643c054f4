package search

// DefaultQueries is the fixed keyword set used for the USD/KRW briefing.
// One primary-source request is issued per keyword.
var DefaultQueries = []string{
	"환율",
	"원달러 환율",
	"달러 환율 전망",
	"외환시장",
}

// resultsPerQuery is how many results we request from the primary source per keyword.
const resultsPerQuery = 20
