package services

import "github.com/kendall-kelly/lightwork-auth-api/models"

var permissionCatalog = []models.Permission{
	{Name: "Team Create", Operation: "team_create", Description: "Permission to create teams."},
	{Name: "Team Read", Operation: "team_read", Description: "Permission to read teams."},
	{Name: "Team Update", Operation: "team_update", Description: "Permission to update teams."},
	{Name: "Team Delete", Operation: "team_delete", Description: "Permission to delete teams."},
	{Name: "Profile Create", Operation: "profile_create", Description: "Permission to create profiles."},
	{Name: "Profile Read", Operation: "profile_read", Description: "Permission to read profiles."},
	{Name: "Profile Update", Operation: "profile_update", Description: "Permission to update profiles."},
	{Name: "Profile Delete", Operation: "profile_delete", Description: "Permission to delete profiles."},
	{Name: "Work Order Create", Operation: "workorder_create", Description: "Permission to create work orders."},
	{Name: "Work Order Read", Operation: "workorder_read", Description: "Permission to read work orders."},
	{Name: "Work Order Update", Operation: "workorder_update", Description: "Permission to update work orders."},
	{Name: "Work Order Delete", Operation: "workorder_delete", Description: "Permission to delete work orders."},
	{Name: "Property Create", Operation: "property_create", Description: "Permission to create properties."},
	{Name: "Property Read", Operation: "property_read", Description: "Permission to read properties."},
	{Name: "Property Update", Operation: "property_update", Description: "Permission to update properties."},
	{Name: "Property Delete", Operation: "property_delete", Description: "Permission to delete properties."},
	{Name: "Task Create", Operation: "task_create", Description: "Permission to create tasks."},
	{Name: "Task Read", Operation: "task_read", Description: "Permission to read tasks."},
	{Name: "Task Update", Operation: "task_update", Description: "Permission to update tasks."},
	{Name: "Task Delete", Operation: "task_delete", Description: "Permission to delete tasks."},
	{Name: "Felicity AI Read", Operation: "felicity_ai_read", Description: "Permission to read Felicity AI data."},
	{Name: "Felicity AI Update", Operation: "felicity_ai_update", Description: "Permission to update Felicity AI settings."},
	{Name: "Felicity AI Delete", Operation: "felicity_ai_delete", Description: "Permission to delete Felicity AI data."},
	{Name: "Calendar Create", Operation: "calendar_create", Description: "Permission to create calendar events."},
	{Name: "Calendar Read", Operation: "calendar_read", Description: "Permission to read calendar events."},
	{Name: "Calendar Update", Operation: "calendar_update", Description: "Permission to update calendar events."},
	{Name: "Calendar Delete", Operation: "calendar_delete", Description: "Permission to delete calendar events."},
	{Name: "Knowledge Base Create", Operation: "knowledgebase_create", Description: "Permission to create knowledge base articles."},
	{Name: "Knowledge Base Read", Operation: "knowledgebase_read", Description: "Permission to read knowledge base articles."},
	{Name: "Knowledge Base Update", Operation: "knowledgebase_update", Description: "Permission to update knowledge base articles."},
	{Name: "Knowledge Base Delete", Operation: "knowledgebase_delete", Description: "Permission to delete knowledge base articles."},
	{Name: "Dashboard Access", Operation: "dashboard_access", Description: "Permission to access the dashboard."},
}

var roleCatalog = []models.Role{
	{Name: "Admin", Description: "Admin role with access to all permissions."},
	{Name: "Manager", Description: "Manager role with access to manage teams, properties, work orders, tasks, and Felicity AI."},
	{Name: "Maintenance Member", Description: "Maintenance member with access to read and update properties, tasks, and work orders."},
}
