package augment

// System prompt
const (
	SystemPromptRefine = `你是一個分析 Jira 查詢的助手。你的任務是從用戶查詢中提取精確的搜索條件。
請特別注意：
1. 關鍵詞必須保持原始大小寫
2. 項目名稱只提取核心代號，不包含 "project" 或 "專案" 等詞（例如 "KFC 專案" → "KFC"）
3. 必須忽略排序相關的詞語（如：最久、最新、最近、處理最久），這些不是搜索關鍵詞
4. 只回傳 JSON，不要包含任何 markdown 標記或說明文字`
)

// User prompt template: raw phrase, then already-extracted keywords.
const (
	PromptRefineTemplate = `請分析這個查詢：%s

已識別的關鍵詞：%s

請提取以下信息並以 JSON 格式返回：
{
  "keywords": ["主要關鍵詞"],
  "related_keywords": ["相關技術詞彙"],
  "project": null,
  "issue_types": [],
  "statuses": []
}`
)
