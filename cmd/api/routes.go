package main

import (
	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/httpapi"
	"jobboard-platform/internal/identity"
	"jobboard-platform/internal/rbac"
	"jobboard-platform/internal/users"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
//
// Protected routes run the same chain in the same order:
// RequireAuth -> RequirePermission -> Record -> handler.
// Permission checks therefore precede audit recording, so denied requests
// never produce entries, and the recorder only fires on 2xx/3xx responses.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authManager *identity.Manager, userService *users.Service, recorder *audit.Recorder) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", h.Login)
	r.POST("/auth/forgot-password", h.ForgotPassword)
	r.POST("/auth/reset-password", h.ResetPassword)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(identity.RequireAuth(authManager, userService))
	{
		v1.GET("/me", h.Me)
		v1.POST("/auth/logout",
			recorder.Record(audit.ActionLogout, rbac.ResourceUsers),
			h.Logout)

		usersGroup := v1.Group("/users")
		{
			usersGroup.GET("",
				rbac.RequirePermission(rbac.ResourceUsers, rbac.ActionRead),
				h.ListUsers)
			usersGroup.GET("/:id",
				rbac.RequirePermission(rbac.ResourceUsers, rbac.ActionRead),
				h.GetUser)
			usersGroup.POST("",
				rbac.RequirePermission(rbac.ResourceUsers, rbac.ActionCreate),
				recorder.Record(audit.ActionCreate, rbac.ResourceUsers),
				h.CreateUser)
			usersGroup.PUT("/:id",
				rbac.RequirePermission(rbac.ResourceUsers, rbac.ActionUpdate),
				recorder.Record(audit.ActionUpdate, rbac.ResourceUsers),
				h.UpdateUser)
			usersGroup.PUT("/:id/permissions",
				rbac.RequireAdmin(),
				recorder.Record(audit.ActionUpdate, rbac.ResourceUsers),
				h.UpdateUserPermissions)
			usersGroup.DELETE("/:id",
				rbac.RequirePermission(rbac.ResourceUsers, rbac.ActionDelete),
				recorder.Record(audit.ActionDelete, rbac.ResourceUsers),
				h.DeleteUser)
		}

		companiesGroup := v1.Group("/companies")
		{
			companiesGroup.GET("",
				rbac.RequirePermission(rbac.ResourceCompanies, rbac.ActionRead),
				h.ListCompanies)
			companiesGroup.GET("/:id",
				rbac.RequirePermission(rbac.ResourceCompanies, rbac.ActionRead),
				h.GetCompany)
			companiesGroup.POST("",
				rbac.RequirePermission(rbac.ResourceCompanies, rbac.ActionCreate),
				recorder.Record(audit.ActionCreate, rbac.ResourceCompanies),
				h.CreateCompany)
			companiesGroup.PUT("/:id",
				rbac.RequirePermission(rbac.ResourceCompanies, rbac.ActionUpdate),
				recorder.Record(audit.ActionUpdate, rbac.ResourceCompanies),
				h.UpdateCompany)
			companiesGroup.DELETE("/:id",
				rbac.RequirePermission(rbac.ResourceCompanies, rbac.ActionDelete),
				recorder.Record(audit.ActionDelete, rbac.ResourceCompanies),
				h.DeleteCompany)
		}

		jobsGroup := v1.Group("/jobs")
		{
			jobsGroup.GET("",
				rbac.RequirePermission(rbac.ResourceJobs, rbac.ActionRead),
				h.ListJobs)
			jobsGroup.GET("/:id",
				rbac.RequirePermission(rbac.ResourceJobs, rbac.ActionRead),
				h.GetJob)
			jobsGroup.POST("",
				rbac.RequirePermission(rbac.ResourceJobs, rbac.ActionCreate),
				recorder.Record(audit.ActionCreate, rbac.ResourceJobs),
				h.CreateJob)
			jobsGroup.PUT("/:id",
				rbac.RequirePermission(rbac.ResourceJobs, rbac.ActionUpdate),
				recorder.Record(audit.ActionUpdate, rbac.ResourceJobs),
				h.UpdateJob)
			jobsGroup.DELETE("/:id",
				rbac.RequirePermission(rbac.ResourceJobs, rbac.ActionDelete),
				recorder.Record(audit.ActionDelete, rbac.ResourceJobs),
				h.DeleteJob)
		}

		applicationsGroup := v1.Group("/applications")
		{
			applicationsGroup.GET("",
				rbac.RequirePermission(rbac.ResourceApplications, rbac.ActionRead),
				h.ListApplications)
			applicationsGroup.GET("/:id",
				rbac.RequirePermission(rbac.ResourceApplications, rbac.ActionRead),
				h.GetApplication)
			applicationsGroup.POST("",
				rbac.RequirePermission(rbac.ResourceApplications, rbac.ActionCreate),
				recorder.Record(audit.ActionCreate, rbac.ResourceApplications),
				h.CreateApplication)
			applicationsGroup.PUT("/:id",
				rbac.RequirePermission(rbac.ResourceApplications, rbac.ActionUpdate),
				recorder.Record(audit.ActionUpdate, rbac.ResourceApplications),
				h.UpdateApplication)
			applicationsGroup.DELETE("/:id",
				rbac.RequirePermission(rbac.ResourceApplications, rbac.ActionDelete),
				recorder.Record(audit.ActionDelete, rbac.ResourceApplications),
				h.DeleteApplication)
		}

		// Audit access never goes through the permission matrix; the log
		// itself is admin-only and reads of it are not recorded.
		auditGroup := v1.Group("/audit")
		auditGroup.Use(rbac.RequireAdmin())
		{
			auditGroup.GET("", h.ListAuditLogs)
			auditGroup.GET("/export", h.ExportAuditLogsCSV)
		}
	}
}
