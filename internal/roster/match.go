package roster

import "strings"

// indexOf находит запись, принадлежащую паре (имя, username).
// Для каждой записи сначала проверяется username: токен "@username"
// в нижнем регистре где-либо внутри записи считается точным совпадением —
// зарегистрированный username авторитетнее совпадения имён. Если username
// не совпал, имя записи (без гостевого суффикса) сравнивается с именем
// без учёта регистра. Возвращает -1, если участник не найден.
func indexOf(entries []Entry, displayName, username string) int {
	dn := strings.ToLower(strings.TrimSpace(displayName))
	un := ""
	if username != "" {
		un = "@" + strings.ToLower(username)
	}
	for i, e := range entries {
		host := strings.ToLower(e.HostDisplay)
		if un != "" && strings.Contains(host, un) {
			return i
		}
		if host == dn {
			return i
		}
	}
	return -1
}
