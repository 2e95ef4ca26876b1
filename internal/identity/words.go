package identity

// words feeds the word-based email styles. Order and duplicates are
// significant: indices are derived from seeded draws.
var words = [...]string{
	"phoenix", "dragon", "thunder", "ocean", "mountain", "eagle", "storm", "fire",
	"galaxy", "cosmic", "ninja", "warrior", "mystic", "shadow", "crystal", "golden",
	"silver", "diamond", "emerald", "sapphire", "ruby", "platinum", "bronze", "steel",
	"winter", "summer", "spring", "autumn", "sunset", "sunrise", "midnight", "dawn",
	"hunter", "ranger", "knight", "wizard", "mage", "sorcerer", "paladin", "rogue",
	"tiger", "lion", "wolf", "bear", "shark", "falcon", "hawk", "raven",
	"cyber", "tech", "digital", "quantum", "matrix", "virtual", "pixel", "binary",
	"star", "comet", "asteroid", "meteor", "planet", "universe", "cosmos", "nebula",
	"crypto", "blockchain", "neon", "laser", "turbo", "ultra", "mega", "hyper",
	"alpha", "beta", "gamma", "delta", "omega", "sigma", "chrome", "fusion",
	"reactor", "engine", "power", "energy", "voltage", "circuit", "network", "system",
	"core", "pulse", "wave", "beam", "flux", "zone", "vertex", "apex",
	"legend", "myth", "epic", "saga", "quest", "blade", "sword", "shield",
	"crown", "throne", "castle", "fortress", "tower", "gate", "bridge", "realm",
	"kingdom", "empire", "dynasty", "clan", "tribe", "guild", "order", "covenant",
	"oracle", "prophet", "sage", "master", "guardian", "sentinel", "warden", "keeper",
	"kaplan", "aslan", "kartal", "ejder", "yildiz", "ay", "gunes", "deniz",
	"dag", "orman", "ruzgar", "firtina", "simsek", "gok", "toprak", "ates",
	"buz", "kar", "yagmur", "bulut", "goktem", "altin", "gumus", "elmas",
	"sehir", "koy", "ada", "vadi", "tepe", "yayla", "ova", "kahraman",
	"savascar", "avci", "sovalye", "prens", "kral", "sultan", "han", "drache",
	"adler", "wolf", "lowe", "falke", "sturm", "feuer", "stern", "mond",
	"sonne", "berg", "wald", "meer", "fluss", "himmel", "gold", "silber",
	"eisen", "stahl", "kristall", "diamant", "rubin", "saphir", "kaiser", "konig",
	"prinz", "ritter", "held", "krieger", "jager", "magier", "aigle", "loup",
	"faucon", "tempete", "feu", "etoile", "lune", "soleil", "montagne", "foret",
	"riviere", "ciel", "or", "argent", "fer", "acier", "cristal", "rubis",
	"saphir", "roi", "prince", "chevalier", "heros", "guerrier", "chasseur", "magicien",
	"sage", "aguila", "lobo", "halcon", "tormenta", "fuego", "estrella", "luna",
	"sol", "montana", "bosque", "oceano", "rio", "cielo", "oro", "plata",
	"hierro", "acero", "cristal", "diamante", "rubi", "zafiro", "rey", "principe",
	"caballero", "heroe", "guerrero", "cazador", "mago", "sabio", "drago", "aquila",
	"leone", "tigre", "lupo", "falco", "tempesta", "fuoco", "stella", "luna",
	"sole", "montagna", "foresta", "oceano", "fiume", "cielo", "oro", "argento",
	"ferro", "acciaio", "cristallo", "diamante", "rubino", "zaffiro", "re", "principe",
	"cavaliere", "eroe", "guerriero", "cacciatore", "mago", "saggio", "ryu", "tora",
	"ookami", "taka", "arashi", "hi", "mizu", "kaze", "hoshi", "tsuki",
	"taiyou", "yama", "mori", "umi", "kawa", "sora", "kin", "gin",
	"tetsu", "hagane", "suishou", "daiya", "safaia", "ou", "ouji", "kishi",
	"eiyuu", "senshi", "ryoushi", "mahou", "kenja", "yong", "horangi", "neukdae",
	"maeeul", "pokpung", "bul", "mul", "baram", "byeol", "dal", "haetbit",
	"san", "sup", "bada", "gang", "haneul", "geum", "eun", "cheol",
	"suejeong", "wang", "wangja", "gisa", "yeongung", "jeonsa", "sanyang", "mabup",
	"hyeonin", "noor", "qamar", "shams", "jabal", "bahr", "nahr", "sama",
	"nar", "dhahab", "fidda", "hadid", "fulad", "mas", "yaqut", "zumurrud",
	"lali", "malik", "amir", "faris", "batal", "muhrib", "sayad", "sahir",
	"hakim", "drakon", "orel", "lev", "tigr", "volk", "sokol", "burya",
	"ogon", "zvezda", "solntse", "gora", "les", "more", "reka", "nebo",
	"zoloto", "serebro", "zhelezo", "stal", "kristall", "almaz", "safir", "korol",
	"prints", "rytsar", "geroj", "voin", "okhotnik", "mag", "mudrets", "sher",
	"baagh", "garud", "toofan", "aag", "paani", "hava", "dharti", "sitara",
	"chand", "suraj", "parvat", "jungle", "samudra", "nadi", "aasman", "sona",
	"chandi", "loha", "ispat", "sphatik", "heera", "manik", "neelam", "raja",
	"rajkumar", "yoddha", "veer", "shikari", "jaadugar", "gyani", "pandit", "pixel",
	"codec", "wifi", "cloud", "sync", "upload", "stream", "cache", "hash",
	"token", "stack", "queue", "array", "loop", "function", "method", "class",
	"object", "string", "integer", "boolean", "vector", "matrix", "algorithm", "rouge",
	"bleu", "vert", "noir", "blanc", "rojo", "azul", "verde", "rosso",
	"blu", "nero", "bianco", "rot", "blau", "grun", "akai", "aoi",
	"midori", "kuro", "shiro", "kirmizi", "mavi", "yesil", "uno", "dos",
	"tres", "quatre", "cinq", "six", "eins", "zwei", "drei", "ichi",
	"ni", "san", "bir", "iki", "uch", "ek", "do", "teen",
	"griffin", "sphinx", "chimera", "hydra", "kraken", "basilisk", "banshee", "valkyrie",
	"centaur", "minotaur", "cyclops", "medusa", "pegasus", "unicorn", "werewolf", "vampire",
}
