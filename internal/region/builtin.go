package region

import "sync"

func hamiltonDictionary() *Dictionary {
	return NewDictionary(Hamilton).Append(
		Region{Name: "Rotokauri ICMP", Predicates: []Predicate{
			NewPattern("rotokauri", "baverstock", "waiwhakareke"),
		}},
		Region{Name: "Waitawhiriwhiri ICMP", Predicates: []Predicate{
			NewPattern("waitawhiriwhiri", "beerescourt", "forest lake", "crawshaw", "maeroa"),
		}},
		Region{Name: "Rototuna ICMP", Predicates: []Predicate{
			NewPattern("rototuna", "huntington", "flagstaff", "horsham downs"),
		}},
		Region{Name: "Kirikiriroa ICMP", Predicates: []Predicate{
			NewPattern("kirikiriroa", "chartwell", "queenwood", "fairfield", "enderley"),
		}},
		Region{Name: "Ruakura ICMP", Predicates: []Predicate{
			NewPattern("ruakura", "fairview downs", "puketaha"),
		}},
		Region{Name: "Mangaonua ICMP", Predicates: []Predicate{
			NewPattern("mangaonua", "hillcrest", "silverdale", "riverlea"),
		}},
		Region{Name: "Peacocke ICMP", Predicates: []Predicate{
			NewPattern("peacocke", "hamilton south", "weston lea"),
		}},
		Region{Name: "Mangakotukutuku ICMP", Predicates: []Predicate{
			NewPattern("mangakotukutuku", "glenview", "fitzroy", "bader", "melville"),
		}},
		Region{Name: "Te Awa o Katapaki ICMP", Predicates: []Predicate{
			NewPattern("katapaki", "st andrews", "pukete"),
		}},
	)
}

func waikatoDictionary() *Dictionary {
	return NewDictionary(Waikato).Append(
		Region{Name: "Ngāruawāhia ICMP", Predicates: []Predicate{
			NewPattern("ngāruawāhia", "taupiri", "hopuhopu", "glen massey"),
		}},
		Region{Name: "Huntly ICMP", Predicates: []Predicate{
			NewPattern("huntly", "rāhui pōkeka", "ohinewai"),
		}},
		Region{Name: "Te Kauwhata ICMP", Predicates: []Predicate{
			NewPattern("te kauwhata", "rangiriri", "waerenga"),
		}},
		Region{Name: "Pōkeno ICMP", Predicates: []Predicate{
			NewPattern("pōkeno", "tuakau", "mercer"),
		}},
		Region{Name: "Raglan ICMP", Predicates: []Predicate{
			NewPattern("raglan", "whāingaroa", "te uku"),
		}},
		Region{Name: "Horotiu ICMP", Predicates: []Predicate{
			NewPattern("horotiu", "te kōwhai", "gordonton"),
		}},
		Region{Name: "Tamahere ICMP", Predicates: []Predicate{
			NewPattern("tamahere", "matangi", "newstead"),
		}},
	)
}

var builtin = sync.OnceValue(func() map[Council]*Dictionary {
	return map[Council]*Dictionary{
		Hamilton: hamiltonDictionary(),
		Waikato:  waikatoDictionary(),
	}
})

// DictionaryFor returns the built-in dictionary for council. Unknown
// councils get an empty dictionary, so they always classify to their
// fallback label.
func DictionaryFor(council Council) *Dictionary {
	if d, ok := builtin()[council]; ok {
		return d
	}
	return NewDictionary(council)
}
