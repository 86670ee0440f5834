package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Chinese

	// Site chrome
	message.SetString(lang, "site.title", "修仙百科")
	message.SetString(lang, "site.subtitle", "仙道知识宝典 · Cultivation Knowledge Compendium")
	message.SetString(lang, "site.footer", "© 修仙百科 · 探索仙道奥秘，传承修真智慧")
	message.SetString(lang, "nav.home", "← 返回首页")
	message.SetString(lang, "nav.back_to_list", "← 返回列表")
	message.SetString(lang, "nav.admin", "🔐 管理后台")
	message.SetString(lang, "nav.language", "English")

	// Home
	message.SetString(lang, "home.intro", "欢迎来到修仙百科，这里汇集了修仙界的各种知识与奥秘。从灵根资质到修行境界，从功法秘籍到灵丹妙药，一切修仙所需的知识都在此处等待您的探索。")
	message.SetString(lang, "home.records", "%d 条记录")

	// Lists
	message.SetString(lang, "list.search_placeholder", "搜索%s...")
	message.SetString(lang, "list.search", "搜索")
	message.SetString(lang, "list.filter_all", "全部")
	message.SetString(lang, "list.active_filters", "筛选条件:")
	message.SetString(lang, "list.clear", "清除")
	message.SetString(lang, "list.count", "找到 %d 条%s记录")
	message.SetString(lang, "list.count_filtered", "找到 %d 条符合条件的%s记录")
	message.SetString(lang, "list.empty", "暂无%s信息")
	message.SetString(lang, "list.view_detail", "点击查看详情 →")
	message.SetString(lang, "error.load", "加载失败，请稍后重试")
	message.SetString(lang, "error.not_found", "未找到该条目")

	// Filter labels
	message.SetString(lang, "filter.type", "类型")
	message.SetString(lang, "filter.grade", "品级")
	message.SetString(lang, "filter.level", "等级")
	message.SetString(lang, "filter.category", "类别")
	message.SetString(lang, "filter.species", "种族")

	// Shared fields
	message.SetString(lang, "field.name", "名称")
	message.SetString(lang, "field.imageUrl", "图片链接")
	message.SetString(lang, "field.createdAt", "创建时间")
	message.SetString(lang, "field.updatedAt", "更新时间")

	// Login
	message.SetString(lang, "login.title", "管理员登录")
	message.SetString(lang, "login.username", "用户名")
	message.SetString(lang, "login.password", "密码")
	message.SetString(lang, "login.submit", "登录")
	message.SetString(lang, "login.failed", "用户名或密码错误")
	message.SetString(lang, "login.error", "登录失败，请重试")

	// Console
	message.SetString(lang, "console.dashboard", "管理后台")
	message.SetString(lang, "console.welcome", "欢迎，%s")
	message.SetString(lang, "console.logout", "退出登录")
	message.SetString(lang, "console.manage", "管理")
	message.SetString(lang, "console.add", "添加")
	message.SetString(lang, "console.edit", "编辑")
	message.SetString(lang, "console.view", "查看")
	message.SetString(lang, "console.delete", "删除")
	message.SetString(lang, "console.bulk_delete", "删除选中")
	message.SetString(lang, "console.import", "导入")
	message.SetString(lang, "console.export", "导出")
	message.SetString(lang, "console.save", "保存")
	message.SetString(lang, "console.cancel", "取消")
	message.SetString(lang, "console.select_all", "全选")
	message.SetString(lang, "console.actions", "操作")
	message.SetString(lang, "console.create_title", "添加%s")
	message.SetString(lang, "console.edit_title", "编辑%s")
	message.SetString(lang, "console.import_title", "导入%s")
	message.SetString(lang, "console.import_hint", "粘贴 JSON 数组，每个元素创建一条记录")
	message.SetString(lang, "console.confirm_delete", "确定要删除这个条目吗？此操作不可撤销。")
	message.SetString(lang, "console.confirm_bulk", "确定要删除选中的 %d 个条目吗？此操作不可撤销。")
	message.SetString(lang, "console.confirm", "确认删除")
	message.SetString(lang, "console.select_first", "请先选择要删除的条目")
	message.SetString(lang, "console.created", "创建成功！")
	message.SetString(lang, "console.updated", "更新成功！")
	message.SetString(lang, "console.deleted", "删除成功！")
	message.SetString(lang, "console.bulk_deleted", "批量删除成功！共删除 %d 条")
	message.SetString(lang, "console.bulk_partial", "批量删除完成：成功 %d 条，失败 %d 条")
	message.SetString(lang, "console.imported", "成功导入 %d 条数据！")
	message.SetString(lang, "console.import_partial", "导入完成：成功 %d 条，失败 %d 条")
	message.SetString(lang, "console.import_format", "导入数据格式错误，请使用JSON数组格式")
	message.SetString(lang, "console.create_failed", "创建失败: %s")
	message.SetString(lang, "console.update_failed", "更新失败: %s")
	message.SetString(lang, "console.delete_failed", "删除失败: %s")
	message.SetString(lang, "console.item_failed", "第 %d 条: %s")

	// Form validation
	message.SetString(lang, "form.select", "请选择")
	message.SetString(lang, "form.required", "%s不能为空")
	message.SetString(lang, "form.invalid_image", "请输入有效的图片URL")
	message.SetString(lang, "form.not_number", "%s必须是整数")
	message.SetString(lang, "form.out_of_range", "%s必须在 %d 到 %d 之间")
	message.SetString(lang, "form.too_small", "%s不能小于 %d")
}
