package i18n

// Catalog keys used by the tracker and notification engine. English is
// the fallback language and must define every key.
var catalogs = map[string]map[string]string{
	"en": {
		"notification.task_complete":       "job#{seq} done, duration: {duration}",
		"notification.waiting_input":       "Waiting for input",
		"notification.permission_required": "Permission Required",
		"notification.action_required":     "Action Required",
		"notification.generic":             "Notification",
		"notification.default_title":       "Claude Task",

		"duration.seconds":         "{seconds}s",
		"duration.minutes":         "{minutes}m",
		"duration.minutes_seconds": "{minutes}m {seconds}s",
		"duration.hours":           "{hours}h",
		"duration.hours_minutes":   "{hours}h {minutes}m",
		"duration.unknown":         "Unknown",

		"time.layout": "January 02, 2006 at 15:04",
	},
	"zh-CN": {
		"notification.task_complete":       "任务#{seq}完成，耗时：{duration}",
		"notification.waiting_input":       "等待输入",
		"notification.permission_required": "需要权限",
		"notification.action_required":     "需要操作",
		"notification.generic":             "通知",
		"notification.default_title":       "Claude 任务",

		"duration.seconds":         "{seconds}秒",
		"duration.minutes":         "{minutes}分钟",
		"duration.minutes_seconds": "{minutes}分{seconds}秒",
		"duration.hours":           "{hours}小时",
		"duration.hours_minutes":   "{hours}小时{minutes}分钟",
		"duration.unknown":         "未知",

		"time.layout": "2006年01月02日 15:04",
	},
}
