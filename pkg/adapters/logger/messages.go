package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Annotating %d images with %d workers": "%d 枚の画像を %d ワーカーで注釈中",
		"Annotating %s":                        "%s に注釈を追加中",
		"Output saved to %s":                   "出力を %s に保存しました",
		"Annotated %d images":                  "%d 枚の画像に注釈を追加しました",
		"Interrupted, shutting down...":        "中断されました。シャットダウン中...",

		// Annotate stage (debug)
		"Applying %d annotations to %dx%d image":    "%d 件の注釈を %dx%d の画像に適用中",
		"Annotation %d placed at (%d, %d) using %s": "注釈 %d を (%d, %d) に配置しました (%s)",
		"Failed to save debug output: %v":           "デバッグ出力の保存に失敗しました: %v",

		// Overlay renderer (debug)
		"No text lines to draw, skipping":  "描画するテキストがないためスキップします",
		"Anchor %s does not fit, using %s": "配置 %s は画像に収まらないため %s を使用します",

		// Warnings
		"Unknown position %q, using top-left margin":  "不明な位置 %q のため左上の余白に配置します",
		"Font file %s not found, using built-in font": "フォントファイル %s が見つからないため内蔵フォントを使用します",

		// Errors
		"Failed to annotate %s: %v": "%s への注釈に失敗しました: %v",
	})
}
