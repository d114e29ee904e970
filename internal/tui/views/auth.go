package views

import (
	"github.com/rivo/tview"

	"github.com/clack-chat/clack/internal/tui/ui"
)

// AuthForm is the login/register screen. It starts in login mode; a button
// switches to register mode, which adds the confirm field.
type AuthForm struct {
	*tview.Form
	theme      *ui.Theme
	register   bool
	onLogin    func(username, password string)
	onRegister func(username, password, confirm string)
}

// NewAuthForm creates the auth screen in login mode.
func NewAuthForm(theme *ui.Theme) *AuthForm {
	form := tview.NewForm()
	form.SetBorder(true)

	af := &AuthForm{Form: form, theme: theme}
	af.SetTheme(theme)
	af.build()
	return af
}

// SetTheme swaps the form's color theme.
func (af *AuthForm) SetTheme(theme *ui.Theme) {
	af.theme = theme
	af.SetBackgroundColor(theme.BgColor)
	af.SetBorderColor(theme.BorderColor)
	af.SetTitleColor(theme.TitleColor)
	af.SetFieldBackgroundColor(theme.TableCursorBg)
	af.SetFieldTextColor(theme.TableCursorFg)
	af.SetLabelColor(theme.FgColor)
	af.SetButtonBackgroundColor(theme.BorderColor)
	af.SetButtonTextColor(theme.TableHeaderFg)
}

// SetOnLogin sets the login submit callback.
func (af *AuthForm) SetOnLogin(fn func(username, password string)) {
	af.onLogin = fn
}

// SetOnRegister sets the register submit callback.
func (af *AuthForm) SetOnRegister(fn func(username, password, confirm string)) {
	af.onRegister = fn
}

func (af *AuthForm) build() {
	af.Clear(true)

	if af.register {
		af.SetTitle(" Create account ")
	} else {
		af.SetTitle(" Sign in ")
	}

	af.AddInputField("Username", "", 32, nil, nil)
	af.AddPasswordField("Password", "", 32, '*', nil)
	if af.register {
		af.AddPasswordField("Confirm password", "", 32, '*', nil)
	}

	af.AddButton("Submit", af.submit)
	if af.register {
		af.AddButton("Back to sign in", func() { af.SwitchMode(false) })
	} else {
		af.AddButton("Create account", func() { af.SwitchMode(true) })
	}
}

// SwitchMode toggles between login and register and rebuilds the form.
func (af *AuthForm) SwitchMode(register bool) {
	af.register = register
	af.build()
}

func (af *AuthForm) submit() {
	username := af.fieldText("Username")
	password := af.fieldText("Password")
	if af.register {
		if af.onRegister != nil {
			af.onRegister(username, password, af.fieldText("Confirm password"))
		}
		return
	}
	if af.onLogin != nil {
		af.onLogin(username, password)
	}
}

func (af *AuthForm) fieldText(label string) string {
	item := af.GetFormItemByLabel(label)
	if input, ok := item.(*tview.InputField); ok {
		return input.GetText()
	}
	return ""
}
