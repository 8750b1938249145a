package descriptions

// DogClass es la clase en la que compite el perro. Vive acá y no en
// registrations porque la regla de calificación (escala por clase)
// es de este paquete; registrations la importa.
type DogClass string

const (
	ClassBaby         DogClass = "baby"
	ClassPuppy        DogClass = "puppy"
	ClassJunior       DogClass = "junior"
	ClassIntermediate DogClass = "intermediate"
	ClassOpen         DogClass = "open"
	ClassWorking      DogClass = "working"
	ClassChampion     DogClass = "champion"
	ClassVeteran      DogClass = "veteran"
)

func ParseDogClass(s string) (DogClass, bool) {
	switch DogClass(s) {
	case ClassBaby, ClassPuppy, ClassJunior, ClassIntermediate,
		ClassOpen, ClassWorking, ClassChampion, ClassVeteran:
		return DogClass(s), true
	}
	return "", false
}

// GradeScale: baby y puppy se califican en la escala corta, el resto en
// la estándar. Nunca ambas.
type GradeScale string

const (
	ScaleBabyPuppy GradeScale = "baby_puppy"
	ScaleStandard  GradeScale = "standard"
)

func ScaleForClass(c DogClass) GradeScale {
	if c == ClassBaby || c == ClassPuppy {
		return ScaleBabyPuppy
	}
	return ScaleStandard
}

var standardGrades = map[string]struct{}{
	"excellent":    {},
	"very_good":    {},
	"good":         {},
	"satisfactory": {},
	"disqualified": {},
	"absent":       {},
}

var babyPuppyGrades = map[string]struct{}{
	"very_promising": {},
	"promising":      {},
	"unpromising":    {},
}

// Grade es la calificación como valor único con tag de escala, en vez
// de dos columnas nullable mutuamente excluyentes.
type Grade struct {
	Scale GradeScale
	Value string
}

func (g Grade) IsZero() bool { return g.Scale == "" && g.Value == "" }

// ValidGradeValue chequea que el valor pertenezca a la escala.
func ValidGradeValue(scale GradeScale, value string) bool {
	switch scale {
	case ScaleStandard:
		_, ok := standardGrades[value]
		return ok
	case ScaleBabyPuppy:
		_, ok := babyPuppyGrades[value]
		return ok
	}
	return false
}

// Title: títulos de club opcionales que acompañan la calificación.
type Title string

const (
	TitleJuniorWinner Title = "junior_winner"
	TitleCWC          Title = "cwc" // Certyfikat Wystawowego Championa
	TitleCACIB        Title = "cacib"
	TitleBestBaby     Title = "best_baby"
	TitleBestPuppy    Title = "best_puppy"
	TitleBestVeteran  Title = "best_veteran"
	TitleBOB          Title = "best_of_breed"
	TitleBOS          Title = "best_of_opposite_sex"
)

func ParseTitle(s string) (Title, bool) {
	switch Title(s) {
	case TitleJuniorWinner, TitleCWC, TitleCACIB, TitleBestBaby,
		TitleBestPuppy, TitleBestVeteran, TitleBOB, TitleBOS:
		return Title(s), true
	}
	return "", false
}
