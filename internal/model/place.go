package model

// Place represents a row of the places table
type Place struct {
	Code           string  `db:"code" json:"code"`
	Sources        string  `db:"sources" json:"sources"`
	Name           string  `db:"name" json:"name"`
	EnglishText    string  `db:"english_text" json:"english_text"`
	SpanishText    string  `db:"spanish_text" json:"spanish_text"`
	ChineseText    string  `db:"chinese_text" json:"chinese_text"`
	GermanText     string  `db:"german_text" json:"german_text"`
	FrenchText     string  `db:"french_text" json:"french_text"`
	RussianText    string  `db:"russian_text" json:"russian_text"`
	PortugueseText string  `db:"portuguese_text" json:"portuguese_text"`
	ItalianText    string  `db:"italian_text" json:"italian_text"`
	HindiText      string  `db:"hindi_text" json:"hindi_text"`
	ArabText       string  `db:"arab_text" json:"arab_text"`
	TurkishText    string  `db:"turkish_text" json:"turkish_text"`
	JapaneseText   string  `db:"japanese_text" json:"japanese_text"`
	RomanianText   string  `db:"romanian_text" json:"romanian_text"`
	PolishText     string  `db:"polish_text" json:"polish_text"`
	CzechText      string  `db:"czech_text" json:"czech_text"`
	IndonesianText string  `db:"indonesian_text" json:"indonesian_text"`
	Level          int16   `db:"level" json:"level"`
	Coordinates    string  `db:"coordinates" json:"coordinates"`
	Province       string  `db:"province" json:"province"`
	Country        string  `db:"country" json:"country"`
	Tag            string  `db:"tag" json:"tag"`
	Image          string  `db:"image" json:"image"`
	Web            *string `db:"web" json:"web"`
	Phone          *string `db:"phone" json:"phone"`
}

// MinPlace is the lightweight projection stored in min_places.
// It shares its key and fields with Place.
type MinPlace struct {
	Code        string  `db:"code" json:"code"`
	Name        string  `db:"name" json:"name"`
	Province    string  `db:"province" json:"province"`
	Country     string  `db:"country" json:"country"`
	Coordinates string  `db:"coordinates" json:"coordinates"`
	Tag         string  `db:"tag" json:"tag"`
	Image       string  `db:"image" json:"image"`
	Level       int16   `db:"level" json:"level"`
	Web         *string `db:"web" json:"web"`
	Phone       *string `db:"phone" json:"phone"`
}

// Min returns the min_places projection of the place
func (p Place) Min() MinPlace {
	return MinPlace{
		Code:        p.Code,
		Name:        p.Name,
		Province:    p.Province,
		Country:     p.Country,
		Coordinates: p.Coordinates,
		Tag:         p.Tag,
		Image:       p.Image,
		Level:       p.Level,
		Web:         p.Web,
		Phone:       p.Phone,
	}
}
