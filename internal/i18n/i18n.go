// Package i18n is a passive, read-only string table for the supported display languages.
package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

const (
	Spanish = "es"
	English = "en"

	// Default is used when no preference is stored or it cannot be matched.
	Default = Spanish
)

// Catalog holds every user-facing string for one language.
type Catalog struct {
	Code  string
	Label string

	Title    string
	Subtitle string

	EnterFestival string
	LoginHint     string
	LoginOpened   string

	LoadingTitle    string
	LoadingMessages []string

	ErrorTitle string
	Retry      string
	Home       string

	Theme        string
	Language     string
	Download     string
	Downloading  string
	Downloaded   string
	ExportFailed string
	Day          string

	// Failure summaries. Formats take the arguments documented on each.
	NetworkFailure string // cause
	HTTPFailure    string // status, status text, excerpt
	DecodeFailure  string // excerpt
	SchemaFailure  string
	BackendFailure string // backend text
	UnknownFailure string

	Weekdays [7]string
	Months   [12]string
	// DateFormat takes weekday, day of month, month name.
	DateFormat string
}

var catalogs = map[string]*Catalog{
	Spanish: {
		Code:          Spanish,
		Label:         "ES",
		Title:         "TIDALFEST",
		Subtitle:      "Tu festival personalizado basado en tu musica favorita",
		EnterFestival: "ID del festival",
		LoginHint:     "Conecta tu cuenta de TIDAL para generar tu festival",
		LoginOpened:   "Abriendo el inicio de sesion en el navegador",
		LoadingTitle:  "Creando tu festival",
		LoadingMessages: []string{
			"Obteniendo tus artistas favoritos",
			"Analizando albumes",
			"Revisando tus reproducciones",
			"Calculando scores de popularidad",
			"Organizando headliners",
			"Seleccionando special guests",
			"Armando el undercard",
			"Analizando tus gustos musicales",
			"Generando el lineup perfecto",
			"Organizando el festival",
			"Preparando tu festival",
			"Ultimos ajustes",
		},
		ErrorTitle:     "Error al cargar el festival",
		Retry:          "Reintentar",
		Home:           "Volver al inicio",
		Theme:          "Tema",
		Language:       "Idioma",
		Download:       "Descargar",
		Downloading:    "Descargando...",
		Downloaded:     "Cartel guardado en %s",
		ExportFailed:   "Error al generar la imagen. Por favor, intenta de nuevo.",
		Day:            "Dia %d",
		NetworkFailure: "No se pudo conectar con el servidor: %v",
		HTTPFailure:    "Error %d: %s - %s",
		DecodeFailure:  "Error al parsear respuesta del servidor: %s",
		SchemaFailure:  "La respuesta del servidor no tiene el formato esperado.",
		BackendFailure: "El servidor reporto un error: %s",
		UnknownFailure: "Error desconocido al cargar el festival",
		Weekdays:       [7]string{"domingo", "lunes", "martes", "miercoles", "jueves", "viernes", "sabado"},
		Months: [12]string{
			"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
		},
		DateFormat: "%s %d de %s",
	},
	English: {
		Code:          English,
		Label:         "EN",
		Title:         "TIDALFEST",
		Subtitle:      "Your personalized festival based on your favorite music",
		EnterFestival: "Festival ID",
		LoginHint:     "Connect your TIDAL account to generate your festival",
		LoginOpened:   "Opening login in your browser",
		LoadingTitle:  "Building your festival",
		LoadingMessages: []string{
			"Fetching your favorite artists",
			"Analyzing albums",
			"Reviewing your plays",
			"Calculating popularity scores",
			"Arranging headliners",
			"Picking special guests",
			"Putting together the undercard",
			"Analyzing your musical taste",
			"Generating the perfect lineup",
			"Organizing the festival",
			"Preparing your festival",
			"Final touches",
		},
		ErrorTitle:     "Could not load the festival",
		Retry:          "Retry",
		Home:           "Back to home",
		Theme:          "Theme",
		Language:       "Language",
		Download:       "Download",
		Downloading:    "Downloading...",
		Downloaded:     "Poster saved to %s",
		ExportFailed:   "Could not generate the image. Please try again.",
		Day:            "Day %d",
		NetworkFailure: "Could not reach the server: %v",
		HTTPFailure:    "Error %d: %s - %s",
		DecodeFailure:  "Could not parse the server response: %s",
		SchemaFailure:  "The server response is not in the expected format.",
		BackendFailure: "The server reported an error: %s",
		UnknownFailure: "Unknown error while loading the festival",
		Weekdays:       [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		Months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		DateFormat: "%s, %[3]s %[2]d",
	},
}

var (
	supported = []string{Spanish, English}
	matcher   = language.NewMatcher([]language.Tag{language.Spanish, language.English})
)

// Supported returns the language codes in display order.
func Supported() []string {
	return append([]string(nil), supported...)
}

// Lookup returns the catalog for code, or the default catalog when code is unknown.
func Lookup(code string) *Catalog {
	if c, ok := catalogs[code]; ok {
		return c
	}
	return catalogs[Default]
}

// Match resolves a free-form preference ("en-US", "es-MX", an Accept-Language list) to a supported code.
func Match(pref string) string {
	if _, ok := catalogs[pref]; ok {
		return pref
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return supported[idx]
}

// Next cycles to the language after code.
func Next(code string) string {
	for i, c := range supported {
		if c == code {
			return supported[(i+1)%len(supported)]
		}
	}
	return Default
}

// FormatDate renders t as a long, localized date such as "sabado 14 de enero".
func (c *Catalog) FormatDate(t time.Time) string {
	return fmt.Sprintf(c.DateFormat, c.Weekdays[t.Weekday()], t.Day(), c.Months[t.Month()-1])
}

// DayLabel renders the heading for festival day n.
func (c *Catalog) DayLabel(n int) string {
	return fmt.Sprintf(c.Day, n)
}
