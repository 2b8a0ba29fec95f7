package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		override string
		env      map[string]string
		want     string
	}{
		{"override wins", "zh-CN", map[string]string{"LANG": "en_US.UTF-8"}, "zh-CN"},
		{"LANG english", "", map[string]string{"LANG": "en_US.UTF-8"}, "en"},
		{"LANG simplified chinese", "", map[string]string{"LANG": "zh_CN.UTF-8"}, "zh-CN"},
		{"zh-Hans variant", "", map[string]string{"LANG": "zh-Hans"}, "zh-CN"},
		{"LC_ALL fallback", "", map[string]string{"LC_ALL": "fr_FR.UTF-8"}, "fr"},
		{"LANGUAGE fallback", "", map[string]string{"LANGUAGE": "de_DE"}, "de"},
		{"nothing set defaults to english", "", nil, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, env := range []string{"LANG", "LC_ALL", "LANGUAGE"} {
				t.Setenv(env, tt.env[env])
			}
			assert.Equal(t, tt.want, Detect(tt.override))
		})
	}
}

func TestNew_UnsupportedFallsBackToEnglish(t *testing.T) {
	tr := New("fr")
	assert.Equal(t, "en", tr.Lang())
	assert.Equal(t, "Claude Task", tr.T("notification.default_title", nil))
}

func TestTranslator_T(t *testing.T) {
	en := New("en")
	zh := New("zh-CN")

	assert.Equal(t, "job#3 done, duration: 5m 30s",
		en.T("notification.task_complete", map[string]string{"seq": "3", "duration": "5m 30s"}))
	assert.Equal(t, "任务#3完成，耗时：5分30秒",
		zh.T("notification.task_complete", map[string]string{"seq": "3", "duration": "5分30秒"}))

	// Unknown keys come back verbatim so nothing is ever dropped.
	assert.Equal(t, "no.such.key", en.T("no.such.key", nil))

	// Missing args leave the placeholder in place rather than failing.
	assert.Equal(t, "job#{seq} done, duration: 1s",
		en.T("notification.task_complete", map[string]string{"duration": "1s"}))
}

func TestCatalogs_EnglishCoversAllKeys(t *testing.T) {
	for lang, catalog := range catalogs {
		for key := range catalog {
			_, ok := catalogs["en"][key]
			assert.True(t, ok, "key %s from %s missing in en fallback", key, lang)
		}
	}
}
