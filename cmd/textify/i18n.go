// Package main provides localization for the textify CLI.
package main

import (
	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Draw labelled boxes and text panels on images": "画像にラベル付きの枠とテキストを描画",

		// Commands and flags
		"Draw one labelled box on an image":                              "画像にラベル付きの枠を1つ描画",
		"Annotate every image listed in a job file":                      "ジョブファイルに記載された全ての画像に注釈を追加",
		"List the position names":                                        "配置名の一覧を表示",
		"Show version information":                                       "バージョン情報を表示",
		"Input image file":                                               "入力画像ファイル",
		"Output image file; the extension selects the format (required)": "出力画像ファイル。拡張子で形式を決定（必須）",
		"Line of text to draw; repeat for several lines":                 "描画するテキスト行。複数行は繰り返し指定",
		"Bounding box as x,y,width,height; omit to use the whole image":  "枠を x,y,幅,高さ で指定。省略時は画像全体",
		"Where the text goes relative to the box (see positions)":        "枠に対するテキストの配置（positions を参照）",
		"Bounding box color (hex or name)":                               "枠の色（16進数または色名）",
		"JPEG quality (1-100)":                                           "JPEG品質（1-100）",
		"YAML or TOML job file":                                          "YAML/TOMLジョブファイル",
		"Number of images processed concurrently":                        "同時に処理する画像数",
		"Style preset (light, dark)":                                     "スタイルプリセット（light, dark）",
		"Font scale factor (1.0 = 24pt)":                                 "フォント倍率（1.0 = 24pt）",
		"Text color (hex or name)":                                       "文字色（16進数または色名）",
		"Stroke thickness of text and boxes":                             "文字と枠の線の太さ",
		"Text panel color (hex or name)":                                 "テキスト背景の色（16進数または色名）",
		"Built-in font (regular, bold, mono)":                            "内蔵フォント（regular, bold, mono）",
		"TrueType font file used instead of the built-in fonts":          "内蔵フォントの代わりに使うTrueTypeフォントファイル",
		"Rasterization (aa, solid)":                                      "描画方式（aa, solid）",
		"Gap between the text panel and the box edge in pixels":          "テキスト背景と枠の端との間隔（ピクセル）",
		"Gap between text lines in pixels":                               "行間（ピクセル）",
		"Inner padding of the text panel in pixels":                      "テキスト背景の内側余白（ピクセル）",
		"Corner radius of panels and boxes in pixels":                    "背景と枠の角の半径（ピクセル）",
		"Enable debug output":                                            "デバッグ出力を有効化",
		"Directory for debug output":                                     "デバッグ出力のディレクトリ",
		"Write a run summary (Markdown, or JSON for .json)":              "実行サマリーを出力（Markdown、.jsonならJSON）",
		"Log level (debug, info, warn, error)":                           "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                        "全てのログ出力を抑制",

		// Validation
		"--bbox needs 4 values x,y,width,height, got %d": "--bbox には x,y,幅,高さ の4つの値が必要です（%d 個指定されました）",
		"--quality must be between 1 and 100, got %d":    "--quality は 1 から 100 の間で指定してください（%d が指定されました）",

		// Runtime messages
		"textify version %s":          "textify バージョン %s",
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %v": "サマリーの書き込みに失敗しました: %v",

		// Summary content
		"Annotation Summary": "注釈サマリー",
		"Generated":          "生成日時",
		"Settings":           "設定",
		"Item":               "項目",
		"Value":              "値",
		"Preset":             "プリセット",
		"Font Scale":         "フォント倍率",
		"Thickness":          "線の太さ",
		"Font":               "フォント",
		"Margin":             "余白",
		"Workers":            "ワーカー数",
		"Images":             "画像",
		"Input":              "入力",
		"Image Size":         "画像サイズ",
		"File Size":          "ファイルサイズ",
		"No annotations":     "注釈なし",
		"Text":               "テキスト",
		"Lines":              "行数",
		"Position":           "配置",
		"Origin":             "原点",
		"Block":              "ブロック",
		"requested":          "指定",
		"Generated by":       "生成:",
	})
}

// helpVars exposes translated help strings to kong struct tags.
func helpVars() kong.Vars {
	return kong.Vars{
		"annotate_help":           l10n.T("Draw one labelled box on an image"),
		"run_help":                l10n.T("Annotate every image listed in a job file"),
		"positions_help":          l10n.T("List the position names"),
		"version_help":            l10n.T("Show version information"),
		"input_help":              l10n.T("Input image file"),
		"output_help":             l10n.T("Output image file; the extension selects the format (required)"),
		"text_help":               l10n.T("Line of text to draw; repeat for several lines"),
		"bbox_help":               l10n.T("Bounding box as x,y,width,height; omit to use the whole image"),
		"position_help":           l10n.T("Where the text goes relative to the box (see positions)"),
		"bbox_color_help":         l10n.T("Bounding box color (hex or name)"),
		"quality_help":            l10n.T("JPEG quality (1-100)"),
		"config_help":             l10n.T("YAML or TOML job file"),
		"workers_help":            l10n.T("Number of images processed concurrently"),
		"preset_help":             l10n.T("Style preset (light, dark)"),
		"font_scale_help":         l10n.T("Font scale factor (1.0 = 24pt)"),
		"font_color_help":         l10n.T("Text color (hex or name)"),
		"thickness_help":          l10n.T("Stroke thickness of text and boxes"),
		"background_color_help":   l10n.T("Text panel color (hex or name)"),
		"font_help":               l10n.T("Built-in font (regular, bold, mono)"),
		"font_path_help":          l10n.T("TrueType font file used instead of the built-in fonts"),
		"line_type_help":          l10n.T("Rasterization (aa, solid)"),
		"margin_help":             l10n.T("Gap between the text panel and the box edge in pixels"),
		"padding_help":            l10n.T("Gap between text lines in pixels"),
		"background_padding_help": l10n.T("Inner padding of the text panel in pixels"),
		"corner_radius_help":      l10n.T("Corner radius of panels and boxes in pixels"),
		"debug_help":              l10n.T("Enable debug output"),
		"debug_dir_help":          l10n.T("Directory for debug output"),
		"summary_help":            l10n.T("Write a run summary (Markdown, or JSON for .json)"),
		"log_level_help":          l10n.T("Log level (debug, info, warn, error)"),
		"quiet_help":              l10n.T("Suppress all log output"),
	}
}
