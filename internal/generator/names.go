package generator

// Reference data for Turkish retail customers.

var maleFirstNames = []string{
	"Mehmet", "Mustafa", "Ahmet", "Ali", "Hüseyin", "Hasan", "İbrahim", "Murat",
	"Emre", "Burak", "Can", "Kerem", "Oğuz", "Serkan", "Tolga", "Yusuf",
}

var femaleFirstNames = []string{
	"Ayşe", "Fatma", "Emine", "Zeynep", "Elif", "Merve", "Selin", "Derya",
	"Esra", "Gül", "Hatice", "Deniz", "Ebru", "Sibel", "Nazlı", "Özlem",
}

var lastNames = []string{
	"Yılmaz", "Kaya", "Demir", "Şahin", "Çelik", "Yıldız", "Yıldırım", "Öztürk",
	"Aydın", "Özdemir", "Arslan", "Doğan", "Kılıç", "Aslan", "Çetin", "Koç",
	"Kurt", "Özkan", "Şimşek", "Polat",
}

type city struct {
	name       string
	postalBase int
	districts  []string
	phoneCodes []string
}

// cities are weighted by population
var (
	cities = []city{
		{"İstanbul", 34000, []string{"Kadıköy", "Beşiktaş", "Üsküdar", "Şişli", "Bakırköy", "Ataşehir"}, []string{"212", "216"}},
		{"Ankara", 6000, []string{"Çankaya", "Keçiören", "Yenimahalle", "Etimesgut"}, []string{"312"}},
		{"İzmir", 35000, []string{"Konak", "Karşıyaka", "Bornova", "Buca"}, []string{"232"}},
		{"Bursa", 16000, []string{"Osmangazi", "Nilüfer", "Yıldırım"}, []string{"224"}},
		{"Antalya", 7000, []string{"Muratpaşa", "Konyaaltı", "Kepez"}, []string{"242"}},
		{"Konya", 42000, []string{"Selçuklu", "Meram", "Karatay"}, []string{"332"}},
	}
	cityWeights = []int{40, 15, 12, 9, 8, 6}
)

var streets = []string{
	"Atatürk Caddesi", "İstiklal Caddesi", "Cumhuriyet Caddesi", "Bağdat Caddesi",
	"Gazi Bulvarı", "İnönü Sokak", "Fevzi Çakmak Sokak", "Mimar Sinan Sokak",
}

var occupations = []string{
	"Öğretmen", "Mühendis", "Doktor", "Hemşire", "Avukat", "Muhasebeci",
	"Esnaf", "Memur", "Yazılım Geliştirici", "Emekli", "Öğrenci", "Serbest Meslek",
}

var mobilePrefixes = []string{"530", "532", "533", "535", "542", "544", "505", "555"}

var collateral = []string{
	"2019 Fiat Egea", "2021 Toyota Corolla", "2018 Renault Clio", "2020 Hyundai i20",
}

// emailSafe maps Turkish letters to ASCII for email local parts
var emailSafe = map[rune]string{
	'ç': "c", 'Ç': "c", 'ğ': "g", 'Ğ': "g", 'ı': "i", 'İ': "i",
	'ö': "o", 'Ö': "o", 'ş': "s", 'Ş': "s", 'ü': "u", 'Ü': "u",
}
