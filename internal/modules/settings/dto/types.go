package dto

type ThemeOutput struct {
	Mode  string   `json:"mode"`
	Modes []string `json:"modes"`
}

type SetThemeInput struct {
	Mode string
}
