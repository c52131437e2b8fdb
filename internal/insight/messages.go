package insight

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message ids for labels whose English text would collide with another key.
const (
	msgPriorityHigh   = "priority:high"
	msgPriorityMedium = "priority:medium"
	msgPriorityLow    = "priority:low"
	msgEffortLow      = "effort:low"
	msgEffortMedium   = "effort:medium"
	msgEffortHigh     = "effort:high"
	msgWeekLabel      = "week:%d"
	msgDateLayout     = "layout:date"
)

// translation pairs an English message with its Brazilian Portuguese text.
type translation struct {
	key string
	en  string
	pt  string
}

var translations = []translation{
	// Productivity
	{key: "High productivity!", pt: "Excelente Produtividade!"},
	{key: "You have a completion rate of %d%%. Keep it up!", pt: "Você tem uma taxa de conclusão de %d%%. Continue assim!"},
	{key: "Consider raising your goals or taking on more challenging projects.", pt: "Considere aumentar seus objetivos ou assumir projetos mais desafiadores."},
	{key: "Good productivity", pt: "Boa Produtividade"},
	{key: "Completion rate of %d%%. There is room for improvement.", pt: "Taxa de conclusão de %d%%. Há espaço para melhorias."},
	{key: "Try focusing on high-priority tasks first.", pt: "Tente focar em tarefas de alta prioridade primeiro."},
	{key: "Low productivity", pt: "Produtividade Baixa"},
	{key: "Completion rate of %d%%. Let's improve that!", pt: "Taxa de conclusão de %d%%. Vamos melhorar isso!"},
	{key: "Consider breaking large tasks into smaller subtasks.", pt: "Considere quebrar tarefas grandes em subtarefas menores."},
	{key: "Excellent time management", pt: "Excelente Gestão de Tempo"},
	{key: "%d%% of your tasks are completed on time.", pt: "%d%% das suas tarefas são concluídas no prazo."},
	{key: "You are great at meeting deadlines! Keep up the discipline.", pt: "Você é ótimo em cumprir prazos! Mantenha essa disciplina."},
	{key: "Time management needs improvement", pt: "Gestão de Tempo Precisa Melhorar"},
	{key: "Only %d%% of tasks are completed on time.", pt: "Apenas %d%% das tarefas são concluídas no prazo."},
	{key: "Try setting more realistic deadlines or using reminders.", pt: "Tente definir prazos mais realistas ou usar lembretes."},

	// Patterns
	{key: "Most productive category", pt: "Categoria Mais Produtiva"},
	{key: `You are most productive in "%s" with %d%% completion.`, pt: `Você é mais produtivo em "%s" com %d%% de conclusão.`},
	{key: "Consider applying this category's strategies to other areas.", pt: "Considere aplicar as estratégias desta categoria em outras áreas."},
	{key: "Priority pattern", pt: "Padrão de Prioridades"},
	{key: `You use the "%s" priority the most (%d tasks).`, pt: `Você usa mais a prioridade "%s" (%d tarefas).`},
	{key: "Balance your priorities for more effective management.", pt: "Equilibre melhor as prioridades para uma gestão mais eficaz."},
	{key: "Recent activity", pt: "Atividade Recente"},
	{key: "You created %d tasks in the last week.", pt: "Você criou %d tarefas na última semana."},
	{key: "You are very active! Be careful not to overload yourself.", pt: "Você está muito ativo! Cuidado para não se sobrecarregar."},
	{key: "Keep up the pace of task creation.", pt: "Mantenha o ritmo de criação de tarefas."},

	// Suggestions
	{key: "Overdue tasks need attention", pt: "Tarefas Atrasadas Precisam de Atenção"},
	{key: "You have %d overdue task(s).", pt: "Você tem %d tarefa(s) atrasada(s)."},
	{key: "Review and reschedule overdue tasks", pt: "Revisar e reagendar tarefas atrasadas"},
	{key: "Organize your tasks", pt: "Organize Suas Tarefas"},
	{key: "%d tasks have no category.", pt: "%d tarefas não têm categoria definida."},
	{key: "Categorize pending tasks", pt: "Categorizar tarefas pendentes"},
	{key: "Create themed lists", pt: "Crie Listas Temáticas"},
	{key: "%d tasks could be organized into lists.", pt: "%d tarefas poderiam ser organizadas em listas."},
	{key: "Create lists to organize tasks", pt: "Criar listas para organizar tarefas"},
	{key: "Focus on high priorities", pt: "Foque nas Prioridades Altas"},
	{key: "You have %d pending high-priority task(s).", pt: "Você tem %d tarefa(s) de alta prioridade pendente(s)."},
	{key: "Work on priority tasks", pt: "Trabalhar em tarefas prioritárias"},
	{key: "Break down complex tasks", pt: "Divida Tarefas Complexas"},
	{key: "%d complex task(s) could be split into subtasks.", pt: "%d tarefa(s) complexa(s) poderiam ser divididas em subtarefas."},
	{key: "Create subtasks for complex tasks", pt: "Criar subtarefas para tarefas complexas"},

	// Optimizations
	{key: "Duplicate tasks detected", pt: "Tarefas Duplicadas Detectadas"},
	{key: "Found possible duplicate tasks in your system.", pt: "Encontrei possíveis tarefas duplicadas em seu sistema."},
	{key: "Reduce redundancy and confusion", pt: "Reduzir redundância e confusão"},
	{key: "Organization cleanup", pt: "Limpeza de Organização"},
	{key: "%d empty category(ies) and %d empty list(s).", pt: "%d categoria(s) e %d lista(s) vazias."},
	{key: "Cleaner, more organized interface", pt: "Interface mais limpa e organizada"},
	{key: "Success pattern identified", pt: "Padrão de Sucesso Identificado"},
	{key: "Tasks with subtasks have a higher completion rate.", pt: "Tarefas com subtarefas têm maior taxa de conclusão."},
	{key: "Apply the subtask strategy to more projects", pt: "Aplicar estratégia de subtarefas em mais projetos"},

	// Deadlines
	{key: "Task due soon", pt: "Tarefa próxima do prazo"},
	{key: `"%s" is due soon`, pt: `"%s" vence em breve`},
	{key: "Overdue task", pt: "Tarefa atrasada"},
	{key: `"%s" is overdue`, pt: `"%s" está atrasada`},
	{key: "Deadlines", pt: "Prazos"},
	{key: "Due soon", pt: "Vencendo em breve"},
	{key: "No upcoming deadlines.", pt: "Nenhum prazo próximo."},

	// Labels
	{key: msgPriorityHigh, en: "High", pt: "Alta"},
	{key: msgPriorityMedium, en: "Medium", pt: "Média"},
	{key: msgPriorityLow, en: "Low", pt: "Baixa"},
	{key: msgEffortLow, en: "Low", pt: "Baixo"},
	{key: msgEffortMedium, en: "Medium", pt: "Médio"},
	{key: msgEffortHigh, en: "High", pt: "Alto"},
	{key: msgWeekLabel, en: "W%d", pt: "Sem %d"},
	{key: msgDateLayout, en: "2006-01-02", pt: "02/01/2006"},

	// Export and presentation
	{key: "Productivity Report", pt: "Relatório de Produtividade"},
	{key: "Generated on", pt: "Data de Geração"},
	{key: "SUMMARY", pt: "RESUMO GERAL"},
	{key: "Total tasks", pt: "Total de Tarefas"},
	{key: "Completed tasks", pt: "Tarefas Concluídas"},
	{key: "Pending tasks", pt: "Tarefas Pendentes"},
	{key: "Overdue tasks", pt: "Tarefas Atrasadas"},
	{key: "Completion rate", pt: "Taxa de Conclusão"},
	{key: "BY PRIORITY", pt: "POR PRIORIDADE"},
	{key: "High priority", pt: "Alta Prioridade"},
	{key: "Medium priority", pt: "Média Prioridade"},
	{key: "Low priority", pt: "Baixa Prioridade"},
	{key: "Insights", pt: "Insights"},
	{key: "Productivity", pt: "Produtividade"},
	{key: "Patterns", pt: "Padrões"},
	{key: "Suggestions", pt: "Sugestões"},
	{key: "Optimizations", pt: "Otimizações"},
	{key: "Weekly trend", pt: "Tendência Semanal"},
	{key: "Created", pt: "Criadas"},
	{key: "Completed", pt: "Concluídas"},
	{key: "Impact", pt: "Impacto"},
	{key: "Effort", pt: "Esforço"},
	{key: "Action", pt: "Ação"},
	{key: "No suggestions right now.", pt: "Nenhuma sugestão no momento."},
	{key: "No patterns detected yet.", pt: "Nenhum padrão detectado ainda."},
	{key: "No optimizations found.", pt: "Nenhuma otimização encontrada."},
	{key: "%d suggestion(s) hidden.", pt: "%d sugestão(ões) oculta(s)."},

	// Task export
	{key: "Title", pt: "Título"},
	{key: "Description", pt: "Descrição"},
	{key: "Priority", pt: "Prioridade"},
	{key: "Status", pt: "Status"},
	{key: "Created on", pt: "Data de Criação"},
	{key: "Done", pt: "Concluída"},
	{key: "Pending", pt: "Pendente"},
}

// supportedLanguages lists report languages; the first entry is the fallback.
var supportedLanguages = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

func init() {
	for _, tr := range translations {
		en := tr.en
		if en == "" {
			en = tr.key
		}
		_ = message.SetString(language.English, tr.key, en)
		_ = message.SetString(language.BrazilianPortuguese, tr.key, tr.pt)
	}
}

// ParseLanguage matches s against the supported report languages.
// Unknown or empty values fall back to Brazilian Portuguese.
func ParseLanguage(s string) language.Tag {
	if s == "" {
		return supportedLanguages[0]
	}
	tag, err := language.Parse(s)
	if err != nil {
		return supportedLanguages[0]
	}
	_, idx, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return supportedLanguages[0]
	}
	return supportedLanguages[idx]
}
