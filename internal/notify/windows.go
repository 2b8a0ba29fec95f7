package notify

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// toastScript is the PowerShell template for a ToastText02 notification.
const toastScript = `
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null

$template = @"
<toast>
    <visual>
        <binding template="ToastText02">
            <text id="1">%s</text>
            <text id="2">%s</text>
        </binding>
    </visual>
</toast>
"@

$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml($template)
$toast = New-Object Windows.UI.Notifications.ToastNotification $xml
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("CCNotify").Show($toast)
`

// WindowsSender delivers via a PowerShell toast script.
type WindowsSender struct {
	timeout time.Duration
}

// NewWindowsSender creates the Windows native strategy.
func NewWindowsSender(timeout time.Duration) *WindowsSender {
	return &WindowsSender{timeout: timeout}
}

// Name implements Sender.
func (s *WindowsSender) Name() string { return "powershell" }

// Send implements Sender.
func (s *WindowsSender) Send(ctx context.Context, n Notification) error {
	script := fmt.Sprintf(toastScript, xmlEscape(n.Title), xmlEscape(n.Message))
	return runNotifier(ctx, s.timeout, "powershell", "-Command", script)
}

// xmlEscape sanitizes text placed inside the toast XML template.
func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
