package classify

// Shared keyword groups. Catalog text mixes Albanian and English, so most
// groups carry stems for both; stems are matched as plain substrings while
// short English words get word boundaries to avoid accidental hits.
const (
	kwBaby      = `(\bbaby\b|bebe|bebi|bebat|foshnj|femij|\bkids\b|\binfant\b)`
	kwAdult     = `(\badult\b|te rritur|per rritur)`
	kwSun       = `(spf|sunscreen|sun cream|sun milk|sun lotion|krem dielli|mbrojtje nga dielli|after sun|aftersun)`
	kwVitamin   = `(vitamin|suplement|supplement|multivitamin)`
	kwFace      = `(fytyr|facial|\bface\b)`
	kwSetWord   = `(\bset\b|\bkit\b|\bgift\b|dhurat|paket)`
	kwFragrance = `(parfum|perfume|fragrance|eau de toilette|eau de parfum|kolonj)`
)

// DefaultRules returns the built-in classification table for the pharmacy
// taxonomy. Order inside a tier is significant: the first rule that fires
// wins, so specific routes sit above their tier's default.
func DefaultRules() []Rule {
	return []Rule{
		// Tier 1: maternal and infant products override everything else.
		{
			Name:        "Pelena per Bebe",
			Tier:        1,
			All:         []string{kwBaby, `(pelen|diaper|napp(y|ies))`},
			Not:         []string{kwAdult},
			Category:    "Mama dhe Bebat",
			Subcategory: "Kujdesi ndaj Bebit > Pelena",
			Confidence:  0.95,
			Reason:      "baby product with diaper keywords",
		},
		{
			Name:        "SPF per Bebe",
			Tier:        1,
			All:         []string{kwBaby, kwSun},
			Not:         []string{kwAdult},
			Category:    "Mama dhe Bebat",
			Subcategory: "Kujdesi ndaj Bebit > SPF",
			Confidence:  0.9,
			Reason:      "baby product with sun protection keywords",
		},
		{
			Name:        "Suplemente per Bebe",
			Tier:        1,
			All:         []string{kwBaby, `(vitamin|suplement|supplement|drops|pika)`},
			Not:         []string{kwAdult},
			Category:    "Mama dhe Bebat",
			Subcategory: "Kujdesi ndaj Bebit > Suplemente",
			Confidence:  0.85,
			Reason:      "baby product with vitamin or supplement keywords",
		},
		{
			Name:        "Aksesore per Bebe",
			Tier:        1,
			All:         []string{kwBaby, `(biberon|shishe|\bbottle\b|pacifier|sterilizator|sterilizer|\bmonitor\b)`},
			Not:         []string{kwAdult},
			Category:    "Mama dhe Bebat",
			Subcategory: "Kujdesi ndaj Bebit > Aksesore",
			Confidence:  0.85,
			Reason:      "baby feeding or nursery accessory keywords",
		},
		{
			Name:        "Higjena e Bebit",
			Tier:        1,
			All:         []string{kwBaby},
			Not:         []string{kwAdult},
			Category:    "Mama dhe Bebat",
			Subcategory: "Kujdesi ndaj Bebit > Higjena",
			Confidence:  0.8,
			Reason:      "baby product without a more specific route",
		},
		{
			Name:        "Shtatzenia",
			Tier:        1,
			All:         []string{`(shtatzen|shtatzan|pregnan|prenatal|gravid)`},
			Not:         []string{`(test|ovulac|ovulation)`},
			Category:    "Mama dhe Bebat",
			Subcategory: "Shtatzenia",
			Confidence:  0.85,
			Reason:      "pregnancy care keywords",
		},
		{
			Name:        "Ushqyerja me Gji",
			Tier:        1,
			All:         []string{`(breastfeed|gjidhen|laktacion|lactat|nipple|thithka)`},
			Category:    "Mama dhe Bebat",
			Subcategory: "Ushqyerja me Gji",
			Confidence:  0.85,
			Reason:      "breastfeeding keywords",
		},
		{
			Name:        "Planifikimi Familjar",
			Tier:        1,
			All:         []string{`(test shtatzanie|test shtatzenie|pregnancy test|ovulac|ovulation)`},
			Category:    "Mama dhe Bebat",
			Subcategory: "Planifikimi Familjar",
			Confidence:  0.9,
			Reason:      "pregnancy or ovulation test keywords",
		},

		// Tier 2: medical devices and pharmacy supplies.
		{
			Name:       "Pajisje Mjekesore",
			Tier:       2,
			All:        []string{`(tensiometr|blood pressure|termometr|thermometer|glukometr|glucometer|nebulizator|nebulizer|aerosol|test strip|stripa)`},
			Category:   "Pajisje Mjekesore",
			Confidence: 0.95,
			Reason:     "measurement or therapy device keywords",
		},
		{
			Name:       "Ndihma e Pare",
			Tier:       2,
			All:        []string{`(fashe|bandazh|bandage|garz|gauze|antiseptik|antiseptic|leukoplast|plaster)`},
			Category:   "Ndihma e Pare",
			Confidence: 0.9,
			Reason:     "wound care keywords",
		},
		{
			Name:       "Ortopedi",
			Tier:       2,
			All:        []string{`(ortopedik|orthopedic|\bbrace\b|mbeshtetese|splint)`},
			Category:   "Ortopedi",
			Confidence: 0.85,
			Reason:     "orthopedic support keywords",
		},

		// Tier 3: hygiene.
		{
			Name:        "Higjena Orale",
			Tier:        3,
			All:         []string{`(paste dhemb|dhemb|toothpaste|toothbrush|mouthwash|dental|\bfloss\b)`},
			Category:    "Higjena",
			Subcategory: "Higjena Orale",
			Confidence:  0.9,
			Reason:      "oral care keywords",
		},
		{
			Name:        "Higjena Intime",
			Tier:        3,
			All:         []string{`(intim|intimate|depilim|depilator|depilatory|\bwax\b)`},
			Category:    "Higjena",
			Subcategory: "Higjena Intime",
			Confidence:  0.9,
			Reason:      "intimate or depilatory keywords",
		},
		{
			Name:        "Higjena e Kembeve",
			Tier:        3,
			All:         []string{`(kemb|\bfoot\b|callus|kallo)`},
			Category:    "Higjena",
			Subcategory: "Higjena e Kembeve",
			Confidence:  0.85,
			Reason:      "foot care keywords",
		},
		{
			Name:        "Deodorante",
			Tier:        3,
			All:         []string{`(deodorant|antiperspirant|anti-perspirant)`},
			Category:    "Higjena",
			Subcategory: "Higjena e Trupit",
			Confidence:  0.85,
			Reason:      "deodorant keywords",
		},
		{
			Name:        "Sapune dhe Dezinfektues",
			Tier:        3,
			All:         []string{`(sapun|\bsoap\b|sanitizer|dezinfekt|\bwipes\b|peceta)`},
			Not:         []string{kwFace},
			Category:    "Higjena",
			Subcategory: "Higjena e Trupit",
			Confidence:  0.8,
			Reason:      "soap, sanitizer or wipes keywords outside facial context",
		},
		{
			Name:        "Kremra Duarsh",
			Tier:        3,
			All:         []string{`(krem duar|hand cream|handcream)`},
			Category:    "Higjena",
			Subcategory: "Higjena e Trupit",
			Confidence:  0.8,
			Reason:      "hand cream keywords",
		},

		// Tier 4: sexual wellness, ahead of dermocosmetics because the
		// "cialis" substring hides inside "specialist" in several brand
		// lines and must not hijack them.
		{
			Name:       "Wellness Seksual",
			Tier:       4,
			All:        []string{`(prezervativ|condom|lubrifikant|lubrikant|lubricant|erektil|erectile|cialis|viagra|durex)`},
			Not:        []string{`specialist`},
			Category:   "Wellness Seksual",
			Confidence: 0.95,
			Reason:     "contraceptive, lubricant or erectile health keywords",
		},

		// Tier 5: OTC pharmaceuticals.
		{
			Name:       "OTC",
			Tier:       5,
			All:        []string{`(paracetamol|ibuprofen|analgjezik|analgesic|antihistamin|antacid|sirup kolle|cough syrup|nasal spray|sprej hundor|lozenge)`},
			Not:        []string{kwVitamin},
			Category:   "OTC",
			Confidence: 0.85,
			Reason:     "symptom or drug-class keywords without supplement keywords",
		},

		// Tier 6: supplements.
		{
			Name:       "Suplemente",
			Tier:       6,
			All:        []string{`(vitamin|mineral|omega|probiotik|probiotic|protein|kolagjen|collagen|magnez|magnesium|zink|\bzinc\b|suplement|supplement)`},
			Category:   "Suplemente",
			Confidence: 0.85,
			Reason:     "vitamin, mineral or supplement keywords",
		},

		// Tier 7: dermocosmetics, ordered from most to least specific.
		{
			Name:        "Makeup",
			Tier:        7,
			All:         []string{`(makeup|make-up|mascara|foundation|concealer|lipstick|buzekuq|eyeliner|\bblush\b)`},
			Not:         []string{`(dhemb|toothpaste)`},
			Category:    "Dermokozmetike",
			Subcategory: "Makeup",
			Confidence:  0.9,
			Reason:      "makeup keywords",
		},
		{
			Name:        "Nxirje",
			Tier:        7,
			All:         []string{`(self[- ]?tan|autobronz|bronzer|nxirje|tanning)`},
			Not:         []string{kwFace},
			Category:    "Dermokozmetike",
			Subcategory: "Nxirje",
			Confidence:  0.85,
			Reason:      "tanning keywords outside facial context",
		},
		{
			Name:        "SPF",
			Tier:        7,
			All:         []string{kwSun},
			Not:         []string{`(makeup|foundation)`},
			Category:    "Dermokozmetike",
			Subcategory: "SPF",
			Confidence:  0.9,
			Reason:      "sun protection keywords",
		},
		{
			Name:        "Kujdesi per Floket",
			Tier:        7,
			All:         []string{`(shampo|shampoo|conditioner|balsam flok|flok|\bhair\b)`},
			Not:         []string{`(\bbody\b|trup)`},
			Category:    "Dermokozmetike",
			Subcategory: "Floket",
			Confidence:  0.85,
			Reason:      "hair care keywords outside body context",
		},
		{
			Name:        "Kujdesi per Trupin",
			Tier:        7,
			All:         []string{`(body lotion|body cream|body milk|body butter|\bbody\b|trupi)`},
			Not:         []string{`(\bsun\b|diell|shower|dush|fytyr|\bface\b)`},
			Category:    "Dermokozmetike",
			Subcategory: "Trupi",
			Confidence:  0.8,
			Reason:      "body care keywords outside sun, shower and face context",
		},
		{
			Name:        "Xhel Dushi Hidratues",
			Tier:        7,
			All:         []string{`(shower gel|xhel dushi|body wash)`, `(hidratues|moisturi[sz]|hydrat|nourish)`},
			Category:    "Dermokozmetike",
			Subcategory: "Trupi",
			Confidence:  0.8,
			Reason:      "shower gel with moisturizing language",
		},
		{
			Name:        "Xhel Dushi",
			Tier:        7,
			All:         []string{`(shower gel|xhel dushi|body wash)`},
			Category:    "Higjena",
			Subcategory: "Higjena e Trupit",
			Confidence:  0.8,
			Reason:      "plain shower gel routed to hygiene",
		},
		{
			Name:        "Kujdesi per Fytyren",
			Tier:        7,
			All:         []string{`(cleanser|pastrues|serum|retinol|eye cream|krem syve|lip balm|balsam buze|micellar|micelar|tonik|\btoner\b|krem fytyre|face cream|anti-age|antirrudh)`},
			Not:         []string{kwFragrance},
			Category:    "Dermokozmetike",
			Subcategory: "Fytyra",
			Confidence:  0.85,
			Reason:      "facial care keywords",
		},

		// Tier 8: extras and catch-alls.
		{
			Name:        "Parfume",
			Tier:        8,
			All:         []string{kwFragrance},
			Not:         []string{`(fragrance[- ]free|pa parfum|pa arome)`},
			Category:    "Extras",
			Subcategory: "Sete",
			Confidence:  0.8,
			Reason:      "fragrance keywords",
		},
		{
			Name:        "Vajra Esenciale",
			Tier:        8,
			All:         []string{`(vaj esencial|essential oil|aromaterapi|aromatherapy)`},
			Not:         []string{`(vaj trupi|body oil|massage|masazh)`},
			Category:    "Extras",
			Subcategory: "Vajra Esenciale",
			Confidence:  0.85,
			Reason:      "essential oil keywords outside body or massage context",
		},
		{
			Name:       "Set Diabetik",
			Tier:       8,
			All:        []string{kwSetWord, `(diabet|glukoz|glucose)`},
			Category:   "Pajisje Mjekesore",
			Confidence: 0.85,
			Reason:     "diabetes bundle routed back to medical devices",
		},
		{
			Name:        "Sete dhe Dhurata",
			Tier:        8,
			All:         []string{kwSetWord},
			Category:    "Extras",
			Subcategory: "Sete",
			Confidence:  0.75,
			Reason:      "set, kit or gift keywords",
		},
	}
}
