package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/ytget/qr-generator/internal/form"
	"github.com/ytget/qr-generator/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
	lookupEnv       func(string) string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyQRType            = "qr_type"
	KeyGenerate          = "generate"
	KeyHideText          = "hide_text"
	KeyShowText          = "show_text"
	KeyDownload          = "download"
	KeyToggleTheme       = "toggle_theme"
	KeyBackendURL        = "backend_url"
	KeyDownloadDirectory = "download_directory"
	KeyRequestTimeout    = "request_timeout"
	KeyExitWindow        = "exit_window"
	KeyRevealAfterSave   = "reveal_after_save"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyInvalidBackendURL = "invalid_backend_url"
	KeyError             = "error"
	KeyErrorSavingFile   = "error_saving_file"
	KeyErrorOpeningFile  = "error_opening_file"
	KeySavedTo           = "saved_to"
	KeyOpenFile          = "open_file"
	KeyOptional          = "optional"
	KeyValueMissing      = "value_missing"
	KeyTypeMismatch      = "type_mismatch"
	KeyPatternMismatch   = "pattern_mismatch"
)

// Prefixes for keys derived from model values
const (
	KindKeyPrefix  = "kind_"
	FieldKeyPrefix = "field_"
)

// Language codes
const (
	LangSystem = "system"
	LangEN     = "en"
	LangRU     = "ru"
	LangPT     = "pt"
)

// supported lists the translated languages in matcher preference order
var supported = []struct {
	code string
	tag  language.Tag
}{
	{LangEN, language.English},
	{LangRU, language.Russian},
	{LangPT, language.Portuguese},
}

var languageMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEN,
		texts:           make(map[string]map[string]string),
		lookupEnv:       os.Getenv,
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" is resolved from the
// locale environment variables.
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = l.systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage picks the closest supported language for LC_ALL,
// LC_MESSAGES or LANG, falling back to English.
func (l *Localization) systemLanguage() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := l.lookupEnv(name)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
		if err != nil {
			continue
		}
		_, index, confidence := languageMatcher.Match(tag)
		if confidence == language.No {
			return LangEN
		}
		return supported[index].code
	}
	return LangEN
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LangEN]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// KindName returns the menu label of kind
func (l *Localization) KindName(kind model.Kind) string {
	return l.GetText(KindKeyPrefix + kind.String())
}

// FieldLabel returns the translated label of a field, or its schema label
func (l *Localization) FieldLabel(field model.FieldDescriptor) string {
	key := FieldKeyPrefix + field.Name
	if text := l.GetText(key); text != key {
		return text
	}
	return field.Label
}

// FieldPlaceholder returns the placeholder shown in an empty input
func (l *Localization) FieldPlaceholder(field model.FieldDescriptor) string {
	if !field.Required {
		return l.GetText(KeyOptional)
	}
	return l.FieldLabel(field)
}

// ReasonText describes a failed constraint
func (l *Localization) ReasonText(reason form.Reason) string {
	switch reason {
	case form.ReasonValueMissing:
		return l.GetText(KeyValueMissing)
	case form.ReasonTypeMismatch:
		return l.GetText(KeyTypeMismatch)
	default:
		return l.GetText(KeyPatternMismatch)
	}
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEN: "English",
		LangRU: "Русский",
		LangPT: "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LangEN] = map[string]string{
		KeyAppTitle:          "QR Generator",
		KeyFile:              "File",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyQRType:            "QR Type",
		KeyGenerate:          "Generate",
		KeyHideText:          "Hide text",
		KeyShowText:          "Show text",
		KeyDownload:          "Download",
		KeyToggleTheme:       "Toggle theme",
		KeyBackendURL:        "Generator URL",
		KeyDownloadDirectory: "Download Directory",
		KeyRequestTimeout:    "Request Timeout (seconds)",
		KeyExitWindow:        "Hide Animation (ms)",
		KeyRevealAfterSave:   "Show saved file in folder",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyInvalidBackendURL: "Generator URL must start with http:// or https://",
		KeyError:             "Error",
		KeyErrorSavingFile:   "Error saving file",
		KeyErrorOpeningFile:  "Error opening file",
		KeySavedTo:           "Saved to",
		KeyOpenFile:          "Open",
		KeyOptional:          "Optional",
		KeyValueMissing:      "Please fill out this field.",
		KeyTypeMismatch:      "Please enter an email address.",
		KeyPatternMismatch:   "Please match the requested format.",

		KindKeyPrefix + "contact": "Contact",
		KindKeyPrefix + "wifi":    "Wi-Fi",
		KindKeyPrefix + "link":    "Link",

		FieldKeyPrefix + form.FieldFirstName: "First Name",
		FieldKeyPrefix + form.FieldLastName:  "Last Name",
		FieldKeyPrefix + form.FieldEmail:     "Email",
		FieldKeyPrefix + form.FieldPhone:     "Phone",
		FieldKeyPrefix + form.FieldSSID:      "SSID",
		FieldKeyPrefix + form.FieldPassword:  "Password",
		FieldKeyPrefix + form.FieldURL:       "URL",
		FieldKeyPrefix + form.FieldText:      "Text",
	}

	// Russian texts
	l.texts[LangRU] = map[string]string{
		KeyAppTitle:          "Генератор QR",
		KeyFile:              "Файл",
		KeySettings:          "Настройки",
		KeyLanguage:          "Язык",
		KeyQRType:            "Тип QR",
		KeyGenerate:          "Создать",
		KeyHideText:          "Скрыть текст",
		KeyShowText:          "Показать текст",
		KeyDownload:          "Скачать",
		KeyToggleTheme:       "Сменить тему",
		KeyBackendURL:        "Адрес генератора",
		KeyDownloadDirectory: "Папка загрузки",
		KeyRequestTimeout:    "Таймаут запроса (сек)",
		KeyExitWindow:        "Анимация скрытия (мс)",
		KeyRevealAfterSave:   "Показать файл в папке",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyInvalidBackendURL: "Адрес должен начинаться с http:// или https://",
		KeyError:             "Ошибка",
		KeyErrorSavingFile:   "Ошибка сохранения файла",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeySavedTo:           "Сохранено в",
		KeyOpenFile:          "Открыть",
		KeyOptional:          "Необязательно",
		KeyValueMissing:      "Заполните это поле.",
		KeyTypeMismatch:      "Введите адрес электронной почты.",
		KeyPatternMismatch:   "Введите данные в указанном формате.",

		KindKeyPrefix + "contact": "Контакт",
		KindKeyPrefix + "wifi":    "Wi-Fi",
		KindKeyPrefix + "link":    "Ссылка",

		FieldKeyPrefix + form.FieldFirstName: "Имя",
		FieldKeyPrefix + form.FieldLastName:  "Фамилия",
		FieldKeyPrefix + form.FieldEmail:     "Эл. почта",
		FieldKeyPrefix + form.FieldPhone:     "Телефон",
		FieldKeyPrefix + form.FieldSSID:      "SSID",
		FieldKeyPrefix + form.FieldPassword:  "Пароль",
		FieldKeyPrefix + form.FieldURL:       "URL",
		FieldKeyPrefix + form.FieldText:      "Текст",
	}

	// Portuguese texts
	l.texts[LangPT] = map[string]string{
		KeyAppTitle:          "Gerador de QR",
		KeyFile:              "Arquivo",
		KeySettings:          "Configurações",
		KeyLanguage:          "Idioma",
		KeyQRType:            "Tipo de QR",
		KeyGenerate:          "Gerar",
		KeyHideText:          "Ocultar texto",
		KeyShowText:          "Mostrar texto",
		KeyDownload:          "Baixar",
		KeyToggleTheme:       "Alternar tema",
		KeyBackendURL:        "URL do gerador",
		KeyDownloadDirectory: "Diretório de Download",
		KeyRequestTimeout:    "Tempo limite (segundos)",
		KeyExitWindow:        "Animação de ocultar (ms)",
		KeyRevealAfterSave:   "Mostrar arquivo salvo na pasta",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyInvalidBackendURL: "A URL deve começar com http:// ou https://",
		KeyError:             "Erro",
		KeyErrorSavingFile:   "Erro ao salvar arquivo",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeySavedTo:           "Salvo em",
		KeyOpenFile:          "Abrir",
		KeyOptional:          "Opcional",
		KeyValueMissing:      "Preencha este campo.",
		KeyTypeMismatch:      "Insira um endereço de e-mail.",
		KeyPatternMismatch:   "Corresponda ao formato solicitado.",

		KindKeyPrefix + "contact": "Contato",
		KindKeyPrefix + "wifi":    "Wi-Fi",
		KindKeyPrefix + "link":    "Link",

		FieldKeyPrefix + form.FieldFirstName: "Nome",
		FieldKeyPrefix + form.FieldLastName:  "Sobrenome",
		FieldKeyPrefix + form.FieldEmail:     "E-mail",
		FieldKeyPrefix + form.FieldPhone:     "Telefone",
		FieldKeyPrefix + form.FieldSSID:      "SSID",
		FieldKeyPrefix + form.FieldPassword:  "Senha",
		FieldKeyPrefix + form.FieldURL:       "URL",
		FieldKeyPrefix + form.FieldText:      "Texto",
	}
}
