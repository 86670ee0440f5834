package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Site chrome
	message.SetString(lang, "site.title", "Cultivation Encyclopedia")
	message.SetString(lang, "site.subtitle", "修仙百科 · Cultivation Knowledge Compendium")
	message.SetString(lang, "site.footer", "© Cultivation Encyclopedia · Explore the mysteries of the Dao")
	message.SetString(lang, "nav.home", "← Back to home")
	message.SetString(lang, "nav.back_to_list", "← Back to list")
	message.SetString(lang, "nav.admin", "🔐 Admin")
	message.SetString(lang, "nav.language", "中文")

	// Home
	message.SetString(lang, "home.intro", "Welcome to the Cultivation Encyclopedia, a compendium of the knowledge and mysteries of the cultivation world. From spiritual roots to cultivation realms, from secret techniques to miraculous pills, everything a cultivator needs awaits your exploration.")
	message.SetString(lang, "home.records", "%d records")

	// Lists
	message.SetString(lang, "list.search_placeholder", "Search %s...")
	message.SetString(lang, "list.search", "Search")
	message.SetString(lang, "list.filter_all", "All")
	message.SetString(lang, "list.active_filters", "Active filters:")
	message.SetString(lang, "list.clear", "Clear")
	message.SetString(lang, "list.count", "%d %s records found")
	message.SetString(lang, "list.count_filtered", "%d matching %s records found")
	message.SetString(lang, "list.empty", "No %s yet")
	message.SetString(lang, "list.view_detail", "View details →")
	message.SetString(lang, "error.load", "Failed to load, please try again later")
	message.SetString(lang, "error.not_found", "Entry not found")

	// Filter labels
	message.SetString(lang, "filter.type", "Type")
	message.SetString(lang, "filter.grade", "Grade")
	message.SetString(lang, "filter.level", "Level")
	message.SetString(lang, "filter.category", "Category")
	message.SetString(lang, "filter.species", "Species")

	// Shared fields
	message.SetString(lang, "field.name", "Name")
	message.SetString(lang, "field.imageUrl", "Image URL")
	message.SetString(lang, "field.createdAt", "Created")
	message.SetString(lang, "field.updatedAt", "Updated")

	// Login
	message.SetString(lang, "login.title", "Admin Sign In")
	message.SetString(lang, "login.username", "Username")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "login.submit", "Sign in")
	message.SetString(lang, "login.failed", "Invalid username or password")
	message.SetString(lang, "login.error", "Sign in failed, please try again")

	// Console
	message.SetString(lang, "console.dashboard", "Dashboard")
	message.SetString(lang, "console.welcome", "Welcome, %s")
	message.SetString(lang, "console.logout", "Sign out")
	message.SetString(lang, "console.manage", "Manage")
	message.SetString(lang, "console.add", "Add")
	message.SetString(lang, "console.edit", "Edit")
	message.SetString(lang, "console.view", "View")
	message.SetString(lang, "console.delete", "Delete")
	message.SetString(lang, "console.bulk_delete", "Delete selected")
	message.SetString(lang, "console.import", "Import")
	message.SetString(lang, "console.export", "Export")
	message.SetString(lang, "console.save", "Save")
	message.SetString(lang, "console.cancel", "Cancel")
	message.SetString(lang, "console.select_all", "Select all")
	message.SetString(lang, "console.actions", "Actions")
	message.SetString(lang, "console.create_title", "Add %s")
	message.SetString(lang, "console.edit_title", "Edit %s")
	message.SetString(lang, "console.import_title", "Import %s")
	message.SetString(lang, "console.import_hint", "Paste a JSON array; each element creates one record")
	message.SetString(lang, "console.confirm_delete", "Delete this entry? This cannot be undone.")
	message.SetString(lang, "console.confirm_bulk", "Delete the %d selected entries? This cannot be undone.")
	message.SetString(lang, "console.confirm", "Confirm delete")
	message.SetString(lang, "console.select_first", "Select entries to delete first")
	message.SetString(lang, "console.created", "Created.")
	message.SetString(lang, "console.updated", "Updated.")
	message.SetString(lang, "console.deleted", "Deleted.")
	message.SetString(lang, "console.bulk_deleted", "Deleted %d entries.")
	message.SetString(lang, "console.bulk_partial", "Bulk delete finished: %d succeeded, %d failed")
	message.SetString(lang, "console.imported", "Imported %d records.")
	message.SetString(lang, "console.import_partial", "Import finished: %d succeeded, %d failed")
	message.SetString(lang, "console.import_format", "Invalid import data, expected a JSON array")
	message.SetString(lang, "console.create_failed", "Create failed: %s")
	message.SetString(lang, "console.update_failed", "Update failed: %s")
	message.SetString(lang, "console.delete_failed", "Delete failed: %s")
	message.SetString(lang, "console.item_failed", "Item %d: %s")

	// Form validation
	message.SetString(lang, "form.select", "Please select")
	message.SetString(lang, "form.required", "%s is required")
	message.SetString(lang, "form.invalid_image", "Enter a valid image URL")
	message.SetString(lang, "form.not_number", "%s must be a whole number")
	message.SetString(lang, "form.out_of_range", "%s must be between %d and %d")
	message.SetString(lang, "form.too_small", "%s must be at least %d")
}
