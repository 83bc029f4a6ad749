package dashboard

import (
	"fmt"
	"strings"
)

// htmlHead returns the common HTML head section with proper meta tags.
// extra is inserted verbatim before the closing head tag.
func htmlHead(title, description, extra string) string {
	if description == "" {
		description = "Open bug bounty issues, filterable by tech stack"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0, viewport-fit=cover">
	<meta name="description" content="%s">

	<!-- Open Graph / Social Media -->
	<meta property="og:type" content="website">
	<meta property="og:title" content="%s">
	<meta property="og:description" content="%s">

	<!-- Favicon -->
	<link rel="icon" type="image/svg+xml" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='0.9em' font-size='90'>🐛</text></svg>">

	<title>%s</title>
	%s
	%s
</head>`, escapeHTML(description), escapeHTML(title), escapeHTML(description), escapeHTML(title), commonCSS(), extra)
}

// commonCSS returns the shared CSS styles.
func commonCSS() string {
	return `<style>
		/* CSS Variables for theming */
		:root {
			--bg-primary: #f5f5f5;
			--bg-secondary: white;
			--bg-header: #e9ecef;
			--text-primary: #333;
			--text-secondary: #666;
			--link-color: #0066cc;
			--button-bg: #0066cc;
			--button-hover: #0052a3;
			--border-color: #e0e0e0;
			--shadow: rgba(0,0,0,0.1);
			--open-text: #1e7e34;
			--progress-text: #b38600;
			--resolved-text: #0d6efd;
			--error-bg: #f8d7da;
			--error-text: #721c24;
		}

		[data-theme="dark"] {
			--bg-primary: #111827;
			--bg-secondary: #1f2937;
			--bg-header: #374151;
			--text-primary: #e5e7eb;
			--text-secondary: #9ca3af;
			--link-color: #60a5fa;
			--button-bg: #3b82f6;
			--button-hover: #2563eb;
			--border-color: #374151;
			--shadow: rgba(0,0,0,0.3);
			--open-text: #4ade80;
			--progress-text: #facc15;
			--resolved-text: #3b82f6;
			--error-bg: #4a1a1a;
			--error-text: #ff6b6b;
		}

		* {
			box-sizing: border-box;
			margin: 0;
			padding: 0;
		}

		body {
			font-family: system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
			padding: 20px;
			background: var(--bg-primary);
			color: var(--text-primary);
			transition: background-color 0.3s, color 0.3s;
			line-height: 1.6;
		}

		.container {
			max-width: 1200px;
			margin: 0 auto;
		}

		h1 {
			margin-bottom: 10px;
			font-size: 2rem;
			font-weight: 600;
		}

		.nav {
			margin-bottom: 20px;
			display: flex;
			align-items: center;
			gap: 15px;
			flex-wrap: wrap;
		}

		.nav .meta {
			color: var(--text-secondary);
			font-size: 14px;
		}

		.theme-toggle, .button {
			padding: 8px 16px;
			background: var(--button-bg);
			color: white;
			border: none;
			border-radius: 4px;
			cursor: pointer;
			font-size: 14px;
			font-weight: 500;
			transition: background-color 0.3s;
		}

		.theme-toggle:hover, .button:hover {
			background: var(--button-hover);
		}

		.filters {
			display: flex;
			gap: 10px;
			align-items: center;
			margin-bottom: 10px;
		}

		.filter-select {
			padding: 8px 12px;
			border: 1px solid var(--border-color);
			border-radius: 4px;
			background: var(--bg-secondary);
			color: var(--text-primary);
		}

		.filter-count {
			color: var(--text-secondary);
			font-size: 14px;
			margin-bottom: 10px;
		}

		.table-wrapper {
			background: var(--bg-secondary);
			border-radius: 8px;
			box-shadow: 0 2px 4px var(--shadow);
			overflow-x: auto;
		}

		table.issues {
			width: 100%;
			border-collapse: collapse;
		}

		table.issues th {
			background: var(--bg-header);
			text-align: left;
			font-size: 12px;
			font-weight: 500;
			text-transform: uppercase;
			letter-spacing: 0.05em;
			padding: 12px 24px;
		}

		table.issues td {
			padding: 16px 24px;
			font-size: 14px;
			border-top: 1px solid var(--border-color);
		}

		table.issues tbody tr:hover {
			background: var(--bg-header);
		}

		.issue-title {
			font-weight: 500;
			color: var(--link-color);
		}

		.status {
			white-space: nowrap;
		}

		.status-open .status-icon { color: var(--open-text); }
		.status-progress .status-icon { color: var(--progress-text); }
		.status-resolved .status-icon { color: var(--resolved-text); }

		a {
			color: var(--link-color);
			text-decoration: none;
		}

		a:hover {
			text-decoration: underline;
		}

		.empty {
			text-align: center;
			padding: 40px;
			color: var(--text-secondary);
			font-style: italic;
		}

		.error-panel {
			background: var(--error-bg);
			color: var(--error-text);
			padding: 20px;
			border-radius: 8px;
			margin-bottom: 20px;
		}

		.error-panel p {
			margin: 8px 0 16px;
		}

		.loading {
			display: flex;
			flex-direction: column;
			align-items: center;
			gap: 16px;
			padding: 60px;
			color: var(--text-secondary);
		}

		.loading-spinner {
			width: 48px;
			height: 48px;
			border: 4px solid var(--border-color);
			border-top-color: var(--link-color);
			border-radius: 50%;
			animation: spin 0.8s linear infinite;
		}

		@keyframes spin {
			to { transform: rotate(360deg); }
		}
	</style>`
}

// themeToggleScript returns the common theme toggle JavaScript.
func themeToggleScript() string {
	return `<script>
		function toggleTheme() {
			const html = document.documentElement;
			const currentTheme = html.getAttribute('data-theme');
			const newTheme = currentTheme === 'dark' ? 'light' : 'dark';
			html.setAttribute('data-theme', newTheme);
			localStorage.setItem('theme', newTheme);
			updateToggleButton(newTheme);
		}

		function updateToggleButton(theme) {
			const button = document.querySelector('.theme-toggle');
			if (button) {
				button.textContent = theme === 'dark' ? '☀️ Light Mode' : '🌙 Dark Mode';
				button.setAttribute('aria-label', theme === 'dark' ? 'Switch to light mode' : 'Switch to dark mode');
			}
		}

		// Dark is the board default
		(function() {
			const savedTheme = localStorage.getItem('theme') || 'dark';
			document.documentElement.setAttribute('data-theme', savedTheme);
			updateToggleButton(savedTheme);
		})();
	</script>`
}

// refreshScript posts a reload request and reloads the page once the board accepted it.
func refreshScript() string {
	return `<script>
		function refreshBoard(button) {
			if (button) button.disabled = true;
			fetch('/api/refresh', { method: 'POST' })
				.finally(function() { setTimeout(function() { location.reload(); }, 500); });
		}
	</script>`
}

// htmlFooter returns the common HTML footer with all scripts.
func htmlFooter() string {
	return themeToggleScript() + refreshScript() + `
</body>
</html>`
}

// escapeHTML escapes special HTML characters to prevent XSS.
func escapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// externalLink creates a link that opens in a new browsing context.
func externalLink(url, text string) string {
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">↗ %s</a>`,
		escapeHTML(url), escapeHTML(text))
}

// selectOptions renders option elements, marking selected as the chosen one.
// The All sentinel is shown with allText. A selected value missing from values
// is appended so the page shows what was asked for.
func selectOptions(values []string, selected, allValue, allText string) string {
	var sb strings.Builder
	found := false
	for _, v := range values {
		text := v
		if v == allValue {
			text = allText
		}
		attr := ""
		if v == selected {
			attr = " selected"
			found = true
		}
		sb.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, escapeHTML(v), attr, escapeHTML(text)))
	}
	if !found && selected != "" && selected != allValue {
		sb.WriteString(fmt.Sprintf(`<option value="%s" selected>%s</option>`, escapeHTML(selected), escapeHTML(selected)))
	}
	return sb.String()
}
