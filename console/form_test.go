package console

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/models"
)

func TestParseForm(t *testing.T) {
	valid := url.Values{
		"name":        {" 天灵根 "},
		"type":        {"纯属性"},
		"grade":       {"天品"},
		"rarity":      {"10"},
		"description": {"极其罕见"},
	}

	with := func(key, value string) url.Values {
		form := url.Values{}
		for k, v := range valid {
			form[k] = v
		}
		form.Set(key, value)
		return form
	}

	testCases := []struct {
		name             string
		form             url.Values
		expectedProblems []string
	}{
		{name: "valid", form: valid},
		{name: "missing name", form: with("name", "  "), expectedProblems: []string{"名称不能为空"}},
		{name: "missing grade", form: with("grade", ""), expectedProblems: []string{"品级不能为空"}},
		{name: "rarity out of range", form: with("rarity", "11"), expectedProblems: []string{"稀有度必须在 1 到 10 之间"}},
		{name: "rarity not a number", form: with("rarity", "high"), expectedProblems: []string{"稀有度必须是整数"}},
		{name: "invalid image", form: with("imageUrl", "ftp://x/y.png"), expectedProblems: []string{"请输入有效的图片URL"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			values, payload, problems := ParseForm(models.SpiritualRoots, tc.form, language.Chinese)

			// Assert
			assert.Equal(t, tc.expectedProblems, problems)
			assert.Equal(t, tc.form.Get("imageUrl"), values["imageUrl"])
			if tc.expectedProblems == nil {
				assert.Equal(t, "天灵根", payload["name"])
				assert.Equal(t, 10, payload["rarity"])
				assert.Equal(t, "", payload["properties"])
			}
		})
	}
}

func TestParseFormRealmLevel(t *testing.T) {
	form := url.Values{"name": {"炼气期"}, "level": {"0"}, "stage": {"初期"}, "description": {"d"}}

	_, _, problems := ParseForm(models.CultivationRealms, form, language.English)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "Realm Level")

	form.Set("level", "")
	_, payload, problems := ParseForm(models.CultivationRealms, form, language.English)
	require.Len(t, problems, 1)
	assert.NotContains(t, payload, "level")
}

func TestFormFieldsKeepCurrentValueInPicker(t *testing.T) {
	fields := FormFields(models.Pills, map[string]string{"name": "筑基丹", "grade": "仙品"}, language.Chinese)

	require.Equal(t, "name", fields[0].Key)
	assert.Equal(t, "imageUrl", fields[len(fields)-1].Key)

	var grade FormField
	for _, f := range fields {
		if f.Key == "grade" {
			grade = f
		}
	}
	require.True(t, grade.HasOptions())
	assert.Contains(t, grade.Options, "九品")
	assert.Contains(t, grade.Options, "仙品")
	assert.True(t, grade.Required)
}

func TestRecordValues(t *testing.T) {
	image := "https://example.com/a.png"
	pill := &models.Pill{Type: "突破", Grade: "三品", Description: "d"}
	pill.Name = "筑基丹"
	pill.ImageURL = &image

	values := RecordValues(pill)
	assert.Equal(t, "筑基丹", values["name"])
	assert.Equal(t, image, values["imageUrl"])
	assert.Equal(t, "突破", values["type"])
}
