package countries

import "github.com/jamesh1234567/irish-travel-advisory-map/parser"

// Country pairs a display name with the DFA advice-page URL slug.
type Country struct {
	Name string
	Slug string
}

// List returns the static reference list of DFA advisory pages, in
// alphabetical order. `collect --discover` refreshes this from the live
// index page instead.
func List() []Country {
	out := make([]Country, len(slugs))
	for i, slug := range slugs {
		out[i] = Country{Name: parser.CountryNameFromSlug(slug), Slug: slug}
	}
	return out
}

var slugs = []string{
	"afghanistan", "albania", "algeria", "andorra", "angola",
	"antigua-and-barbuda", "argentina", "armenia", "australia", "austria",
	"azerbaijan", "bahamas", "bahrain", "bangladesh", "barbados",
	"belarus", "belgium", "belize", "benin", "bhutan", "bolivia",
	"bosnia-and-herzegovina", "botswana", "brazil", "brunei", "bulgaria",
	"burkina-faso", "burundi", "cambodia", "cameroon", "canada",
	"cape-verde", "central-african-republic", "chad", "chile", "china",
	"colombia", "comoros", "congo", "costa-rica", "cote-divoire",
	"croatia", "cuba", "cyprus", "czech-republic",
	"democratic-republic-of-the-congo", "denmark", "djibouti", "dominica",
	"dominican-republic", "east-timor", "ecuador", "egypt", "el-salvador",
	"equatorial-guinea", "eritrea", "estonia", "eswatini", "ethiopia",
	"fiji", "finland", "france", "gabon", "georgia", "germany", "ghana",
	"greece", "grenada", "guatemala", "guinea", "guinea-bissau", "guyana",
	"haiti", "holy-see", "honduras", "hungary", "iceland", "india",
	"indonesia", "iran", "iraq", "israel", "italy", "jamaica", "japan",
	"jordan", "kazakhstan", "kenya", "kiribati", "kosovo", "kuwait",
	"kyrgyzstan", "laos", "latvia", "lebanon", "lesotho", "liberia",
	"libya", "liechtenstein", "lithuania", "luxembourg", "madagascar",
	"malawi", "malaysia", "maldives", "mali", "malta", "marshall-islands",
	"mauritania", "mauritius", "mexico", "micronesia", "moldova",
	"monaco", "mongolia", "montenegro", "morocco", "mozambique",
	"myanmar", "namibia", "nauru", "nepal", "netherlands", "new-zealand",
	"nicaragua", "niger", "nigeria", "north-korea", "north-macedonia",
	"norway", "oman", "pakistan", "palau", "panama", "papua-new-guinea",
	"paraguay", "peru", "philippines", "poland", "portugal", "qatar",
	"romania", "russia", "rwanda", "saint-kitts-and-nevis", "saint-lucia",
	"saint-vincent-and-the-grenadines", "samoa", "san-marino",
	"sao-tome-and-principe", "saudi-arabia", "senegal", "serbia",
	"seychelles", "sierra-leone", "singapore", "slovakia", "slovenia",
	"solomon-islands", "somalia", "south-africa", "south-korea",
	"south-sudan", "spain", "sri-lanka", "sudan", "suriname", "sweden",
	"switzerland", "syria", "taiwan", "tajikistan", "tanzania",
	"thailand", "the-gambia", "togo", "tonga", "trinidad-and-tobago",
	"tunisia", "turkey", "turkmenistan", "tuvalu", "uganda", "ukraine",
	"united-arab-emirates", "united-kingdom", "uruguay", "usa",
	"uzbekistan", "vanuatu", "venezuela", "vietnam", "yemen", "zambia",
	"zimbabwe",
}
