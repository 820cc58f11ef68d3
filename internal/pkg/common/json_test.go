package common

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			"純 JSON 物件",
			`{"a":1}`,
			`{"a":1}`,
			true,
		},
		{
			"前後夾雜說明文字",
			`以下をどうぞ {"a":1} ご確認ください`,
			`{"a":1}`,
			true,
		},
		{
			"json 圍欄剝除",
			"```json\n{\"a\":1}\n```",
			`{"a":1}`,
			true,
		},
		{
			"無語言標記的圍欄剝除",
			"```\n{\"a\":1}\n```",
			`{"a":1}`,
			true,
		},
		{
			"沒有大括號",
			"nothing to see here",
			"",
			false,
		},
		{
			"括號順序顛倒",
			"} backwards {",
			"",
			false,
		},
		{
			"巢狀物件取最外層",
			`x {"a":{"b":2}} y`,
			`{"a":{"b":2}}`,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractJSONObject(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestQuoteJSONKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"未引號的鍵補上引號", `{name: "a", price: 1}`, `{"name": "a", "price": 1}`},
		{"已引號的鍵不變", `{"name": "a"}`, `{"name": "a"}`},
		{"陣列內的物件", `[{id: 1}, {id: 2}]`, `[{"id": 1}, {"id": 2}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteJSONKeys(tt.in); got != tt.want {
				t.Errorf("QuoteJSONKeys(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("未知欄位報錯", func(t *testing.T) {
		var p payload
		if err := ParseJSONStrict(`{"name":"a","extra":1}`, &p); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("多餘資料報錯", func(t *testing.T) {
		var p payload
		if err := ParseJSON(`{"name":"a"} trailing`, &p); err == nil {
			t.Error("expected error for trailing data")
		}
	})

	t.Run("合法輸入", func(t *testing.T) {
		var p payload
		if err := ParseJSON(`{"name":"a"}`, &p); err != nil {
			t.Errorf("ParseJSON() error = %v", err)
		}
		if p.Name != "a" {
			t.Errorf("Name = %q, want a", p.Name)
		}
	})
}
