package humanid

var adjectives = []string{
	"afraid", "angry", "big", "bitter", "blue", "brave", "breezy", "bright",
	"brown", "busy", "calm", "chatty", "chilly", "clean", "clever", "cold",
	"cool", "crazy", "curly", "cute", "dirty", "dry", "dull", "eager",
	"early", "easy", "empty", "fair", "fancy", "fast", "fat", "few",
	"fluffy", "fresh", "friendly", "funny", "gentle", "giant", "good", "gorgeous",
	"great", "green", "grumpy", "happy", "heavy", "honest", "hot", "huge",
	"hungry", "itchy", "kind", "large", "lazy", "light", "little", "long",
	"loud", "lovely", "lucky", "mean", "mighty", "modern", "neat", "nervous",
	"new", "nice", "odd", "old", "orange", "plenty", "polite", "poor",
	"proud", "purple", "quick", "quiet", "rare", "red", "rich", "rotten",
	"rude", "sad", "salty", "shaggy", "sharp", "shiny", "short", "shy",
	"silent", "silly", "slimy", "slow", "small", "smart", "smooth", "soft",
	"sour", "spicy", "stale", "strong", "sweet", "swift", "tall", "tame",
	"tasty", "thick", "thin", "tidy", "tiny", "tough", "twelve", "warm",
	"weak", "wet", "wicked", "wide", "wild", "wise", "witty", "young",
}

var nouns = []string{
	"ants", "apes", "bags", "bananas", "bars", "bats", "beans", "bears",
	"bees", "bikes", "birds", "boats", "books", "boxes", "buckets", "bugs",
	"buses", "buttons", "cameras", "candles", "cars", "cats", "chairs", "cheetahs",
	"clocks", "clouds", "coats", "cobras", "cooks", "cougars", "cows", "crabs",
	"crews", "cups", "deer", "dingos", "dodos", "dogs", "doors", "dots",
	"dragons", "ducks", "eagles", "eels", "eggs", "emus", "falcons", "files",
	"fireants", "fish", "flies", "forks", "foxes", "frogs", "garlics", "geckos",
	"ghosts", "goats", "grapes", "hairs", "hands", "hats", "hornets", "horses",
	"houses", "items", "jars", "jobs", "kings", "kiwis", "lamps", "laws",
	"lemons", "lions", "lizards", "llamas", "maps", "mice", "moles", "monkeys",
	"moons", "moths", "mugs", "mules", "news", "nights", "olives", "owls",
	"pandas", "pans", "papers", "parents", "parks", "pears", "pens", "pigs",
	"planes", "plants", "pumas", "queens", "rabbits", "rats", "ravens", "rings",
	"rivers", "roses", "schools", "seals", "sheep", "ships", "shoes", "snakes",
	"socks", "spiders", "squids", "stars", "swans", "tables", "tigers", "toes",
	"towns", "toys", "trains", "trees", "turkeys", "turtles", "walls", "wasps",
	"waves", "weeks", "wolves", "words", "worms", "yaks", "years", "zebras",
}

var verbs = []string{
	"accept", "act", "add", "admire", "agree", "allow", "appear", "argue",
	"arrive", "ask", "attack", "attend", "bake", "bathe", "battle", "beam",
	"beg", "behave", "belong", "bet", "blink", "boil", "bow", "brake",
	"breathe", "bubble", "buy", "call", "camp", "care", "carry", "change",
	"cheat", "check", "cheer", "chew", "clap", "clean", "collect", "compare",
	"compete", "complain", "cough", "count", "cover", "crash", "cross", "cry",
	"dance", "decide", "deliver", "deny", "develop", "dream", "drive", "drop",
	"eat", "enjoy", "exist", "explain", "fail", "fetch", "film", "fix",
	"flash", "float", "fly", "fold", "follow", "fry", "give", "glow",
	"grab", "greet", "grin", "grow", "guess", "hammer", "hang", "happen",
	"heal", "hear", "help", "hide", "hope", "hug", "hunt", "invent",
	"invite", "itch", "jam", "jog", "join", "joke", "judge", "juggle",
	"jump", "kick", "kiss", "kneel", "knock", "know", "laugh", "lay",
	"lead", "learn", "leave", "lick", "lie", "like", "listen", "live",
	"look", "love", "make", "march", "marry", "matter", "melt", "mix",
	"move", "nail", "notice", "obey", "occur", "open", "own", "pay",
	"peel", "play", "poke", "post", "pray", "press", "prove", "pull",
	"punch", "push", "raise", "rescue", "rest", "retire", "return", "rhyme",
	"relate", "repair", "reply", "report", "roll", "run", "rush", "say",
	"scream", "search", "sell", "serve", "shake", "share", "shave", "shine",
	"shop", "shout", "sin", "sing", "sink", "sip", "sit", "sleep",
	"slide", "smash", "smell", "smile", "sneeze", "sniff", "sort", "speak",
	"spend", "sparkle", "stand", "stare", "study", "suffer", "swim", "switch",
	"talk", "taste", "teach", "tease", "tell", "thank", "think", "throw",
	"tickle", "tie", "trade", "travel", "try", "turn", "type", "unite",
	"vanish", "visit", "wait", "walk", "warn", "wash", "watch", "wave",
	"whisper", "win", "wink", "wish", "wonder", "work", "worry", "yawn",
}
