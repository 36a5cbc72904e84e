package email

import (
	"fmt"
	"strings"
)

// Inline-styled table HTML for maximum mail-client compatibility.

const (
	weddingDate  = "Saturday, August 15, 2026"
	weddingVenue = "Rouge Restaurant • Calgary, Alberta"
)

// TemplateVars carries everything a campaign template needs besides the
// recipients themselves.
type TemplateVars struct {
	GuestNames  []string
	WebsiteURL  string
	VenueMapURL string
	HotelURL    string
	PixelURL    string
}

// RenderSaveTheDate renders the save-the-date announcement for one invite.
func RenderSaveTheDate(v TemplateVars) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Save the Date - Sam &amp; Jonah</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Palatino Linotype', 'Book Antiqua', Palatino, Georgia, serif; background-color: #f7f3f0;">
<table role="presentation" width="100%%" cellspacing="0" cellpadding="0" border="0" style="background-color: #f7f3f0;">
<tr><td align="center" style="padding: 30px 20px;">
<table role="presentation" width="600" cellspacing="0" cellpadding="0" border="0" style="max-width: 600px; background-color: #ffffff;">
<tr><td style="padding: 50px 40px 30px; text-align: center; background-color: #faf8f5; border-bottom: 1px solid #e8ddd1;">
<p style="margin: 0 0 10px 0; font-size: 14px; letter-spacing: 3px; text-transform: uppercase; color: #a0826d;">Save the Date</p>
<h1 style="margin: 0; font-size: 36px; color: #4a4a4a; font-weight: 300;">Sam <span style="color: #c9a88a;">&amp;</span> Jonah</h1>
</td></tr>
<tr><td style="padding: 40px; background-color: #ffffff; color: #4a4a4a;">
<p style="margin: 0 0 25px 0; font-size: 17px; line-height: 1.7; color: #6b6b6b; text-align: center;">Dear %s,</p>
<p style="margin: 0 0 25px 0; font-size: 17px; line-height: 1.8; color: #6b6b6b; text-align: center;">We're getting married, and we'd love for you to be there!</p>
<table role="presentation" width="100%%" cellspacing="0" cellpadding="0" border="0" style="margin: 20px 0; background-color: #faf8f5; border-radius: 8px;">
<tr><td style="padding: 25px; text-align: center;">
<p style="margin: 0 0 8px 0; font-size: 22px; color: #4a4a4a; font-weight: 300;">%s</p>
<p style="margin: 0; font-size: 16px; color: #8b7355;">%s</p>
</td></tr>
</table>
<p style="margin: 25px 0 0 0; font-size: 15px; line-height: 1.7; color: #8b8b8b; text-align: center;">A formal invitation will follow. Until then, visit <a href="%s" style="color: #a0826d;">our website</a> for details.</p>
</td></tr>
<tr><td style="padding: 25px 40px; text-align: center; background-color: #faf8f5; border-top: 1px solid #e8ddd1;">
<p style="margin: 0; font-size: 13px; color: #b0a090;">With love, Sam &amp; Jonah</p>
</td></tr>
</table>
%s
</td></tr>
</table>
</body>
</html>`,
		JoinNames(v.GuestNames), weddingDate, weddingVenue, v.WebsiteURL, pixelTag(v.PixelURL))
}

// RenderInvitation renders the formal invitation with venue and hotel links.
func RenderInvitation(v TemplateVars) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>You're Invited - Sam &amp; Jonah's Wedding</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Palatino Linotype', 'Book Antiqua', Palatino, Georgia, serif; background-color: #f7f3f0;">
<table role="presentation" width="100%%" cellspacing="0" cellpadding="0" border="0" style="background-color: #f7f3f0;">
<tr><td align="center" style="padding: 30px 20px;">
<table role="presentation" width="600" cellspacing="0" cellpadding="0" border="0" style="max-width: 600px; background-color: #ffffff;">
<tr><td style="padding: 50px 40px 30px; text-align: center; background-color: #faf8f5; border-bottom: 1px solid #e8ddd1;">
<p style="margin: 0 0 10px 0; font-size: 14px; letter-spacing: 3px; text-transform: uppercase; color: #a0826d;">You Are Cordially Invited</p>
<h1 style="margin: 0; font-size: 36px; color: #4a4a4a; font-weight: 300;">Sam <span style="color: #c9a88a;">&amp;</span> Jonah</h1>
</td></tr>
<tr><td style="padding: 40px; background-color: #ffffff; color: #4a4a4a;">
<p style="margin: 0 0 25px 0; font-size: 17px; line-height: 1.7; color: #6b6b6b; text-align: center;">Dear %s,</p>
<p style="margin: 0 0 25px 0; font-size: 17px; line-height: 1.8; color: #6b6b6b; text-align: center;">We joyfully invite you to celebrate our wedding!</p>
<table role="presentation" width="100%%" cellspacing="0" cellpadding="0" border="0" style="margin: 20px 0; background-color: #faf8f5; border-radius: 8px;">
<tr><td style="padding: 25px; text-align: center;">
<p style="margin: 0 0 8px 0; font-size: 22px; color: #4a4a4a; font-weight: 300;">%s</p>
<p style="margin: 0; font-size: 16px; color: #8b7355;">%s</p>
</td></tr>
</table>
<p style="margin: 25px 0 10px 0; font-size: 15px; line-height: 1.7; color: #8b8b8b; text-align: center;">
<a href="%s" style="color: #a0826d;">Venue map</a> &nbsp;•&nbsp;
<a href="%s" style="color: #a0826d;">Hotel information</a> &nbsp;•&nbsp;
<a href="%s" style="color: #a0826d;">Our website</a>
</p>
</td></tr>
<tr><td style="padding: 25px 40px; text-align: center; background-color: #faf8f5; border-top: 1px solid #e8ddd1;">
<p style="margin: 0; font-size: 13px; color: #b0a090;">With love, Sam &amp; Jonah</p>
</td></tr>
</table>
%s
</td></tr>
</table>
</body>
</html>`,
		JoinNames(v.GuestNames), weddingDate, weddingVenue, v.VenueMapURL, v.HotelURL, v.WebsiteURL, pixelTag(v.PixelURL))
}

// JoinNames renders a guest-name list for a salutation: "Jane", "Jane & John".
func JoinNames(names []string) string {
	switch len(names) {
	case 0:
		return "Guest"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
	}
}

func pixelTag(url string) string {
	if url == "" {
		return ""
	}
	return fmt.Sprintf(`<img src="%s" width="1" height="1" alt="" style="display: block;">`, url)
}
